package domain

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive   BookingStatus = "ACTIVE"
	StatusCanceled BookingStatus = "CANCELED"
)

// Booking represents a meeting room booking
type Booking struct {
	ID          string
	ClientID    string
	Room        string
	MeetingDate types.DateString
	StartTime   Timestamp
	EndTime     Timestamp
	Description *string
	Status      BookingStatus
	CreatedAt   time.Time
}

// IsActive returns true if the booking participates in conflict checks
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// Overlaps reports whether [start, end) intersects the booking interval
func (b *Booking) Overlaps(start, end Timestamp) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// ConflictQuery candidate interval for the conflict checker
type ConflictQuery struct {
	Room        string
	MeetingDate types.DateString
	Start       Timestamp
	End         Timestamp
	ExcludeID   *string // the booking being updated
}

// BookingChanges columns to rewrite on update; nil means "leave as is"
// Start and end are always set together
type BookingChanges struct {
	Room        *string
	MeetingDate *types.DateString
	StartTime   *Timestamp
	EndTime     *Timestamp

	// SetDescription with Description == nil clears the column
	SetDescription bool
	Description    *string
}

// IsEmpty returns true if nothing would be written
func (c *BookingChanges) IsEmpty() bool {
	return c.Room == nil &&
		c.MeetingDate == nil &&
		c.StartTime == nil &&
		c.EndTime == nil &&
		!c.SetDescription
}
