package update_booking

// Request модель запроса на изменение бронирования
// nil означает "поле не передано"; недостающие значения берутся из текущей брони
type Request struct {
	ClientID    string
	BookingID   string
	MeetingDate *string
	StartTime   *string
	EndTime     *string
	Room        *string // пустая строка равносильна отсутствию поля
	Description *string // пустая строка очищает описание
}
