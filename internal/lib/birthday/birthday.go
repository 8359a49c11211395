// Package birthday порождает серию напоминаний о дне рождения пользователя.
// Генератор — чистая функция от пользователя и текущего момента; созданные
// события проходят обычный путь валидации и сохранения по одному.
package birthday

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

// EventCount — сколько годовых напоминаний порождается для пользователя.
const EventCount = 20

const eventTitle = "Ваш день рождения!!"

// Events возвращает ровно EventCount одноразовых событий-напоминаний,
// по одному на год, в порядке строгого возрастания года. Если день
// рождения в текущем году уже прошёл (строго раньше now по дате), вся
// серия начинается со следующего года.
// ReminderTime оставлено пустым: его подставит валидатор события.
func Events(user models.User, now time.Time) []models.Event {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	baseYear := now.Year()
	firstDate := time.Date(baseYear, user.Birthday.Month(), user.Birthday.Day(),
		0, 0, 0, 0, time.UTC)
	if firstDate.Before(today) {
		baseYear++
	}

	events := make([]models.Event, 0, EventCount)
	for i := 0; i < EventCount; i++ {
		targetYear := baseYear + i

		eventDate := time.Date(targetYear, user.Birthday.Month(), user.Birthday.Day(),
			0, 0, 0, 0, time.UTC)

		age := targetYear - user.Birthday.Year()
		description := fmt.Sprintf(
			"С днём рождения, %s!!! Это очень важный день, надеюсь, вы отлично его проведёте! Поздравляем с %d-летием.",
			user.Name, age,
		)

		date := eventDate
		events = append(events, models.Event{
			Title:            eventTitle,
			Description:      description,
			Recurrence:       models.RecurrenceSingle,
			EventDate:        &date,
			EventTime:        "10:00",
			Notify:           true,
			NotificationType: models.NotificationEmail,
			UserID:           user.ID,
		})
	}
	return events
}
