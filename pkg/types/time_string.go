package types

import (
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

var (
	// ErrInvalidTimeString возвращается, когда строка не в формате HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrInvalidDateString возвращается, когда строка не в формате YYYY-MM-DD
	ErrInvalidDateString = errors.New("invalid date string format")
)

// TimeString время суток в формате HH:MM (00:00 - 23:59)
type TimeString string

// NewTimeStringFromString создает TimeString с проверкой формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что строка имеет вид HH:MM с двузначными часами и минутами
func (t TimeString) Validate() error {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if _, err := time.Parse(timeLayout, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return nil
}

func (t TimeString) String() string {
	return string(t)
}
