package create_booking

// Request модель запроса на создание бронирования
// Дата и время приходят строками и проверяются в validateRequest
type Request struct {
	ClientID    string  // ID владельца (из токена)
	Room        string  // Метка комнаты, например "A101"
	MeetingDate string  // "2025-03-01"
	StartTime   string  // "09:00"
	EndTime     string  // "10:00"
	Description *string // Описание (опционально)
}
