package assistant

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

const (
	fallbackGreeting = "Это виртуальный ассистент по бронированию переговорных. "

	hintAvailability = "Не забудьте указать свободные часы по дням недели в профиле. "
	hintSupport      = "Если вопрос срочный, напишите также в поддержку через /chat/support. "
	hintRoom         = "Перед бронированием проверьте, не занята ли нужная переговорная в это время. "

	suggestAutoBooking = "Я могу подобрать бронь, если вы сообщите дату, переговорную и время."
	suggestProfile     = "Заполните доступность в /profile/me, чтобы получать более точные подсказки."
)

var (
	availabilityStems = []string{"доступ", "свобод", "dispon", "availab"}
	supportStems      = []string{"поддержк", "проблем", "suporte", "problema", "support", "problem"}
	roomStems         = []string{"переговорн", "комнат", "зал", "sala", "room"}
)

// Fallback локальный ответчик без обращения к провайдеру
// Ответ детерминирован: зависит только от ключевых слов, дней с заполненной доступностью и даты today
// Пустая today отключает подсказку про слоты на сегодня
func Fallback(message string, availability domain.Availability, today types.DateString) string {
	normalized := strings.ToLower(message)

	var b strings.Builder
	b.WriteString(fallbackGreeting)

	if containsAny(normalized, availabilityStems) {
		b.WriteString(hintAvailability)
	}
	if containsAny(normalized, supportStems) {
		b.WriteString(hintSupport)
	}
	if containsAny(normalized, roomStems) {
		b.WriteString(hintRoom)
	}

	days := availability.DaysWithSlots()
	if len(days) > 0 {
		b.WriteString("Вижу заполненную доступность на: ")
		b.WriteString(strings.Join(days, ", "))
		b.WriteString(". Используйте эти слоты в первую очередь. ")
		if weekday, err := today.Weekday(); err == nil && len(availability[weekday]) > 0 {
			fmt.Fprintf(&b, "Сегодня (%s) у вас свободны слоты: %s. ", weekday, strings.Join(availability[weekday], ", "))
		}
		b.WriteString(suggestAutoBooking)
	} else {
		b.WriteString(suggestProfile)
	}

	return strings.TrimSpace(b.String())
}

func containsAny(s string, stems []string) bool {
	for _, stem := range stems {
		if strings.Contains(s, stem) {
			return true
		}
	}
	return false
}
