package types

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateString календарная дата в формате YYYY-MM-DD
type DateString string

// NewDateString форматирует дату из time.Time
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(dateLayout))
}

// NewDateStringFromString создает DateString с проверкой формата и существования даты
func NewDateStringFromString(s string) (DateString, error) {
	d := DateString(s)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

func (d DateString) Validate() error {
	s := string(d)
	if len(s) != len(dateLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}
	return nil
}

func (d DateString) String() string {
	return string(d)
}

// Weekday день недели даты (английское название в нижнем регистре, например "monday")
func (d DateString) Weekday() (string, error) {
	parsed, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return weekdayNames[parsed.Weekday()], nil
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}
