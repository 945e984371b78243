package update_booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// patch проверенные поля запроса
type patch struct {
	meetingDate *types.DateString
	startTime   *types.TimeString
	endTime     *types.TimeString
	room        *string

	setDescription bool
	description    *string
}

// validateRequest проверяет форматы переданных полей
// Ни одного поля -> ErrNoFields, до обращения к хранилищу
func validateRequest(req *Request) (*patch, error) {
	if req.ClientID == "" {
		return nil, fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if _, err := uuid.Parse(req.BookingID); err != nil {
		return nil, fmt.Errorf("%w: bookingId must be a UUID", ErrInvalidInput)
	}

	p := &patch{}

	if req.Room != nil {
		room := strings.TrimSpace(*req.Room)
		if len(room) > domain.MaxRoomLength {
			return nil, fmt.Errorf("%w: room must be at most %d characters", ErrInvalidInput, domain.MaxRoomLength)
		}
		if room != "" {
			p.room = &room
		}
	}

	if req.MeetingDate != nil {
		date, err := types.NewDateStringFromString(*req.MeetingDate)
		if err != nil {
			return nil, fmt.Errorf("%w: meetingDate: %v", ErrInvalidInput, err)
		}
		p.meetingDate = &date
	}

	if req.StartTime != nil {
		start, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
		}
		p.startTime = &start
	}

	if req.EndTime != nil {
		end, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
		}
		p.endTime = &end
	}

	if req.Description != nil {
		if len(*req.Description) > domain.MaxDescriptionLength {
			return nil, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
		}
		p.setDescription = true
		if *req.Description != "" {
			p.description = req.Description
		}
	}

	if p.meetingDate == nil && p.startTime == nil && p.endTime == nil && p.room == nil && !p.setDescription {
		return nil, ErrNoFields
	}

	return p, nil
}

// resolved итоговые значения брони после применения patch
type resolved struct {
	room        string
	meetingDate types.DateString
	start       domain.Timestamp
	end         domain.Timestamp
}

// resolve подставляет недостающие поля из текущей брони
// Время по умолчанию берется срезом сохраненного момента (HH:MM)
func resolve(current *domain.Booking, p *patch) resolved {
	date := current.MeetingDate
	if p.meetingDate != nil {
		date = *p.meetingDate
	}

	startTime := current.StartTime.TimeOfDay()
	if p.startTime != nil {
		startTime = *p.startTime
	}

	endTime := current.EndTime.TimeOfDay()
	if p.endTime != nil {
		endTime = *p.endTime
	}

	room := current.Room
	if p.room != nil {
		room = *p.room
	}

	return resolved{
		room:        room,
		meetingDate: date,
		start:       domain.ComposeTimestamp(date, startTime),
		end:         domain.ComposeTimestamp(date, endTime),
	}
}

// diff собирает только реально изменившиеся колонки
// Смена даты переписывает дату и оба момента; смена времени переписывает оба момента
func diff(current *domain.Booking, next resolved, p *patch) domain.BookingChanges {
	var changes domain.BookingChanges

	if next.room != current.Room {
		changes.Room = &next.room
	}

	if next.meetingDate != current.MeetingDate {
		changes.MeetingDate = &next.meetingDate
		changes.StartTime = &next.start
		changes.EndTime = &next.end
	} else if next.start != current.StartTime || next.end != current.EndTime {
		changes.StartTime = &next.start
		changes.EndTime = &next.end
	}

	if p.setDescription && !sameDescription(current.Description, p.description) {
		changes.SetDescription = true
		changes.Description = p.description
	}

	return changes
}

func sameDescription(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
