package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

func TestComposeTimestamp(t *testing.T) {
	ts := ComposeTimestamp("2025-03-01", "09:30")

	assert.Equal(t, Timestamp("2025-03-01T09:30"), ts)
	assert.Equal(t, "09:30", ts.TimeOfDay().String())
	assert.True(t, ts.Before("2025-03-01T10:00"))
	assert.False(t, ts.Before("2025-03-01T09:30"))
}

func TestNewTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 5, 42, 0, time.UTC)
	assert.Equal(t, Timestamp("2025-03-01T09:05"), NewTimestamp(now))
}

func TestTimestamp_ShortStrings(t *testing.T) {
	assert.Equal(t, "", Timestamp("2025-03-01").TimeOfDay().String())
	assert.Equal(t, "", Timestamp("2025-03-01T9:3").TimeOfDay().String())
}

func TestBooking_Overlaps(t *testing.T) {
	b := &Booking{
		StartTime: "2025-03-01T09:00",
		EndTime:   "2025-03-01T10:00",
		Status:    StatusActive,
	}

	assert.True(t, b.IsActive())
	assert.True(t, b.Overlaps("2025-03-01T09:30", "2025-03-01T09:45"))
	assert.True(t, b.Overlaps("2025-03-01T08:00", "2025-03-01T09:01"))
	assert.True(t, b.Overlaps("2025-03-01T08:00", "2025-03-01T11:00"))

	// полуоткрытые интервалы: соседние брони не пересекаются
	assert.False(t, b.Overlaps("2025-03-01T10:00", "2025-03-01T10:30"))
	assert.False(t, b.Overlaps("2025-03-01T08:00", "2025-03-01T09:00"))

	b.Status = StatusCanceled
	assert.False(t, b.IsActive())
}

func TestBookingChanges_IsEmpty(t *testing.T) {
	assert.True(t, (&BookingChanges{}).IsEmpty())
	assert.False(t, (&BookingChanges{Room: ptr.Ptr("B2")}).IsEmpty())
	assert.False(t, (&BookingChanges{SetDescription: true}).IsEmpty())
}

func TestAvailability_DaysWithSlots(t *testing.T) {
	a := Availability{
		"friday":  {"10:00-11:00"},
		"monday":  {"09:00-10:00"},
		"tuesday": {},
		"holiday": {"12:00"},
	}

	assert.Equal(t, []string{"monday", "friday", "holiday"}, a.DaysWithSlots())
	assert.Empty(t, Availability(nil).DaysWithSlots())
}

func TestParseAvailability(t *testing.T) {
	a, err := ParseAvailability([]byte(`{"monday":["09:00-10:00"],"sunday":[]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00-10:00"}, a["monday"])
	assert.Empty(t, a["sunday"])

	for _, raw := range []string{`[]`, `null`, `"x"`, `{"monday":"09:00"}`, `{"monday":null}`, `{"monday":[1]}`} {
		_, err := ParseAvailability([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestProfileChanges_IsEmpty(t *testing.T) {
	assert.True(t, (&ProfileChanges{}).IsEmpty())
	assert.False(t, (&ProfileChanges{Age: ptr.Ptr(30)}).IsEmpty())
	assert.False(t, (&ProfileChanges{Availability: Availability{}}).IsEmpty())
}
