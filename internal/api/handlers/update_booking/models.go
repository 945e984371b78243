package update_booking

import (
	"encoding/json"

	updateBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/update_booking"
)

// optionalString различает отсутствующее поле и явный null
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// UpdateBookingRequest HTTP request model; любое подмножество полей
type UpdateBookingRequest struct {
	MeetingDate *string        `json:"meetingDate"`
	StartTime   *string        `json:"startTime"`
	EndTime     *string        `json:"endTime"`
	Room        *string        `json:"room"`
	Description optionalString `json:"description"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// description: null очищает описание так же, как пустая строка
func (r *UpdateBookingRequest) ToUseCaseRequest(clientID, bookingID string) *updateBooking.Request {
	req := &updateBooking.Request{
		ClientID:    clientID,
		BookingID:   bookingID,
		MeetingDate: r.MeetingDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Room:        r.Room,
	}

	if r.Description.Set {
		if r.Description.Value != nil {
			req.Description = r.Description.Value
		} else {
			empty := ""
			req.Description = &empty
		}
	}

	return req
}
