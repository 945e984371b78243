package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// validatedRequest запрос после проверки форматов
type validatedRequest struct {
	room        string
	meetingDate types.DateString
	start       domain.Timestamp
	end         domain.Timestamp
	description *string
}

// validateRequest проверяет обязательные поля и форматы, собирает моменты начала и конца
func validateRequest(req *Request) (*validatedRequest, error) {
	if req.ClientID == "" {
		return nil, fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	room := strings.TrimSpace(req.Room)
	if room == "" || req.MeetingDate == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, fmt.Errorf("%w: room, meetingDate, startTime and endTime are required", ErrInvalidInput)
	}

	if len(room) > domain.MaxRoomLength {
		return nil, fmt.Errorf("%w: room must be at most %d characters", ErrInvalidInput, domain.MaxRoomLength)
	}

	date, err := types.NewDateStringFromString(req.MeetingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: meetingDate: %v", ErrInvalidInput, err)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	if req.Description != nil && len(*req.Description) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	start := domain.ComposeTimestamp(date, startTime)
	end := domain.ComposeTimestamp(date, endTime)

	if !start.Before(end) {
		return nil, fmt.Errorf("%w: %s - %s", ErrInvalidTimeRange, startTime, endTime)
	}

	return &validatedRequest{
		room:        room,
		meetingDate: date,
		start:       start,
		end:         end,
		description: req.Description,
	}, nil
}
