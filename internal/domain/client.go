package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Weekdays порядок дней недели для вывода доступности
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Availability доступность клиента: день недели -> список слотов
type Availability map[string][]string

// DaysWithSlots дни, в которых есть хотя бы один слот
// Сначала дни недели по порядку, затем остальные ключи в порядке сортировки
func (a Availability) DaysWithSlots() []string {
	days := make([]string, 0, len(a))
	seen := make(map[string]bool, len(a))

	for _, day := range Weekdays {
		if len(a[day]) > 0 {
			days = append(days, day)
			seen[day] = true
		}
	}

	rest := make([]string, 0)
	for day, slots := range a {
		if !seen[day] && len(slots) > 0 {
			rest = append(rest, day)
		}
	}
	sort.Strings(rest)

	return append(days, rest...)
}

// ParseAvailability разбирает JSON: ожидается объект, каждое значение которого массив строк
func ParseAvailability(raw []byte) (Availability, error) {
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil || generic == nil {
		return nil, fmt.Errorf("availability must be an object of arrays")
	}

	result := make(Availability, len(generic))
	for day, value := range generic {
		var slots []string
		if err := json.Unmarshal(value, &slots); err != nil || slots == nil {
			return nil, fmt.Errorf("availability for %q must be an array of strings", day)
		}
		result[day] = slots
	}
	return result, nil
}

// Client account with profile fields
type Client struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         *string
	Age          *int
	Availability Availability
	ProfilePhoto *string
	CreatedAt    time.Time
}

// ProfileChanges profile columns to rewrite; nil means "leave as is"
type ProfileChanges struct {
	Name         *string
	Role         *string
	Age          *int
	Availability Availability
	ProfilePhoto *string
}

// IsEmpty returns true if nothing would be written
func (c *ProfileChanges) IsEmpty() bool {
	return c.Name == nil &&
		c.Role == nil &&
		c.Age == nil &&
		c.Availability == nil &&
		c.ProfilePhoto == nil
}
