package domain

import "time"

// Time format constants
const (
	TimeFormat      = "15:04"            // HH:MM
	DateFormat      = "2006-01-02"       // YYYY-MM-DD
	TimestampFormat = "2006-01-02T15:04" // YYYY-MM-DDTHH:MM
)

// Auth defaults
const (
	DefaultTokenTTL          = 8 * time.Hour
	DefaultBcryptCost        = 10
	DefaultMinPasswordLength = 6
	// bcrypt учитывает не больше 72 байт пароля
	MaxPasswordBytes = 72
)

// Business validation constants
const (
	MaxRoomLength        = 100
	MaxDescriptionLength = 500
	MaxNameLength        = 120
	MaxMessageLength     = 4000
)
