package domain

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Timestamp каноническая строка момента времени YYYY-MM-DDTHH:MM без часового пояса
// Хранилище читает и пишет моменты только в этом виде, поэтому время суток
// берется срезом строки, а не через разбор и повторное форматирование
type Timestamp string

// ComposeTimestamp склеивает дату и время: date + "T" + time
func ComposeTimestamp(date types.DateString, t types.TimeString) Timestamp {
	return Timestamp(date.String() + "T" + t.String())
}

// TimeOfDay символы 11..15 строки (HH:MM)
func (ts Timestamp) TimeOfDay() types.TimeString {
	s := string(ts)
	if len(s) < 16 {
		return ""
	}
	return types.TimeString(s[11:16])
}

// Before хронологическое сравнение; формат фиксированной ширины сравнивается как строка
func (ts Timestamp) Before(other Timestamp) bool {
	return ts < other
}

func (ts Timestamp) String() string {
	return string(ts)
}

// NewTimestamp форматирует time.Time в каноническую строку
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.Format(TimestampFormat))
}
