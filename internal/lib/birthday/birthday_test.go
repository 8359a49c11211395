package birthday

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

func TestEvents_RolloverWhenBirthdayPassed(t *testing.T) {
	user := models.User{
		ID:       "user-1",
		Name:     "Анна",
		Birthday: time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2025, time.July, 1, 12, 30, 0, 0, time.UTC)

	events := Events(user, now)
	require.Len(t, events, EventCount)

	first := events[0]
	require.NotNil(t, first.EventDate)
	assert.Equal(t, time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC), *first.EventDate)
	assert.Contains(t, first.Description, "36")

	second := events[1]
	require.NotNil(t, second.EventDate)
	assert.Equal(t, time.Date(2027, time.June, 15, 0, 0, 0, 0, time.UTC), *second.EventDate)
	assert.Contains(t, second.Description, "37")

	// Перенос сдвигает всю серию: годы строго возрастают без повторов.
	for i, event := range events {
		require.NotNil(t, event.EventDate)
		assert.Equal(t, 2026+i, event.EventDate.Year())
	}
}

func TestEvents_NoRolloverWhenBirthdayAhead(t *testing.T) {
	user := models.User{
		ID:       "user-1",
		Name:     "Борис",
		Birthday: time.Date(1990, time.December, 1, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	events := Events(user, now)
	require.Len(t, events, EventCount)

	first := events[0]
	require.NotNil(t, first.EventDate)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), *first.EventDate)
	assert.Contains(t, first.Description, "35")
}

func TestEvents_ShapeAndOrder(t *testing.T) {
	user := models.User{
		ID:       "user-7",
		Name:     "Вера",
		Birthday: time.Date(2000, time.March, 8, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

	events := Events(user, now)
	require.Len(t, events, EventCount)

	prevYear := 0
	for i, event := range events {
		t.Run(fmt.Sprintf("event %d", i), func(t *testing.T) {
			assert.Equal(t, models.RecurrenceSingle, event.Recurrence)
			assert.Nil(t, event.DaysOfWeek)
			assert.Equal(t, "10:00", event.EventTime)
			assert.Empty(t, event.ReminderTime)
			assert.True(t, event.Notify)
			assert.Equal(t, models.NotificationEmail, event.NotificationType)
			assert.Equal(t, "user-7", event.UserID)

			require.NotNil(t, event.EventDate)
			assert.Greater(t, event.EventDate.Year(), prevYear)
			prevYear = event.EventDate.Year()
		})
	}
}

func TestEvents_PassValidation(t *testing.T) {
	user := models.User{
		ID:       "user-1",
		Name:     "Анна",
		Birthday: time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	for _, event := range Events(user, now) {
		require.NoError(t, event.Validate())
		assert.Equal(t, models.DefaultReminderTime, event.ReminderTime)
	}
}
