package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/crystal-plan/internal/errs"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/month"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

func TestStorage_EventRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := SetupTestStorage(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	ctx := context.Background()
	userID := factory.CreateUser(t, "testuser", "test@example.com")
	date := time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC)
	eventID := factory.CreateSingleEvent(t, userID, "Приём у врача", date)

	got, err := storage.GetEvent(ctx, eventID, true)
	require.NoError(t, err)

	assert.Equal(t, eventID, got.ID)
	assert.Equal(t, "Приём у врача", got.Title)
	assert.Equal(t, models.RecurrenceSingle, got.Recurrence)
	require.NotNil(t, got.EventDate)
	assert.Equal(t, date.Format("2006-01-02"), got.EventDate.Format("2006-01-02"))
	assert.Equal(t, "10:00", got.EventTime)
	assert.Equal(t, "09:45", got.ReminderTime)
	assert.True(t, got.Notify)
	assert.Equal(t, models.NotificationEmail, got.NotificationType)
	assert.Equal(t, userID, got.UserID)
	assert.True(t, got.Active)

	exists, err := storage.ExistsEvent(ctx, eventID, true)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = storage.ExistsEvent(ctx, "00000000-0000-0000-0000-000000000000", true)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStorage_EventQueries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := SetupTestStorage(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	ctx := context.Background()
	userID := factory.CreateUser(t, "testuser", "test@example.com")
	otherID := factory.CreateUser(t, "otheruser", "other@example.com")

	feb28 := time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC)
	feb29 := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	mar1 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	factory.CreateSingleEvent(t, userID, "В феврале", feb28)
	factory.CreateSingleEvent(t, userID, "Последний день февраля", feb29)
	factory.CreateSingleEvent(t, userID, "Уже март", mar1)
	factory.CreateSingleEvent(t, otherID, "Чужое событие", feb28)

	weeklyID := factory.CreateWeeklyEvent(t, userID, "Тренировка",
		[]time.Weekday{time.Monday, time.Thursday})

	t.Run("single by date", func(t *testing.T) {
		events, err := storage.ListSingleEventsByDate(ctx, userID, feb28, true)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "В феврале", events[0].Title)
	})

	t.Run("single by month honours leap february", func(t *testing.T) {
		start, end := month.Range(2024, time.February)
		events, err := storage.ListSingleEventsByRange(ctx, userID, start, end, true)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "В феврале", events[0].Title)
		assert.Equal(t, "Последний день февраля", events[1].Title)
	})

	t.Run("weekly by day membership", func(t *testing.T) {
		events, err := storage.ListWeeklyEventsByDay(ctx, userID, time.Thursday, true)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, weeklyID, events[0].ID)
		assert.Equal(t, []time.Weekday{time.Monday, time.Thursday}, events[0].DaysOfWeek)

		events, err = storage.ListWeeklyEventsByDay(ctx, userID, time.Friday, true)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("weekly by user", func(t *testing.T) {
		events, err := storage.ListWeeklyEventsByUser(ctx, userID, true)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, weeklyID, events[0].ID)
	})

	t.Run("all by user", func(t *testing.T) {
		events, err := storage.ListEventsByUser(ctx, userID, true)
		require.NoError(t, err)
		assert.Len(t, events, 4)
	})

	t.Run("soft deleted events excluded when onlyActive", func(t *testing.T) {
		affected, err := storage.DeleteEvent(ctx, weeklyID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		events, err := storage.ListWeeklyEventsByUser(ctx, userID, true)
		require.NoError(t, err)
		assert.Empty(t, events)

		events, err = storage.ListWeeklyEventsByUser(ctx, userID, false)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})
}

func TestStorage_DueReminders(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := SetupTestStorage(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	ctx := context.Background()
	userID := factory.CreateUser(t, "testuser", "test@example.com")

	// 2025-09-11 — четверг.
	due := time.Date(2025, time.September, 11, 0, 0, 0, 0, time.UTC)
	factory.CreateSingleEvent(t, userID, "Разовое в этот день", due)
	factory.CreateSingleEvent(t, userID, "Разовое в другой день", due.AddDate(0, 0, 1))
	factory.CreateWeeklyEvent(t, userID, "Еженедельное без уведомлений",
		[]time.Weekday{time.Thursday})

	now := time.Now().UTC()
	_, err := storage.CreateEvent(ctx, models.Event{
		UUID:             "22222222-2222-2222-2222-222222222222",
		Title:            "Еженедельное по четвергам",
		Recurrence:       models.RecurrenceWeekly,
		DaysOfWeek:       []time.Weekday{time.Thursday},
		EventTime:        "18:00",
		ReminderTime:     "17:45",
		Notify:           true,
		NotificationType: models.NotificationEmail,
		UserID:           userID,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	require.NoError(t, err)

	infos, err := storage.ListDueReminders(ctx, due)
	require.NoError(t, err)

	titles := make([]string, 0, len(infos))
	for _, info := range infos {
		titles = append(titles, info.Title)
		assert.Equal(t, "test@example.com", info.Email)
		assert.Equal(t, "testuser", info.Name)
	}
	assert.ElementsMatch(t, []string{"Разовое в этот день", "Еженедельное по четвергам"}, titles)

	// Поздний вечер того же четверга в смещённом поясе: сравнение идёт по
	// календарной дате и не зависит от часового пояса сессии Postgres.
	lateEvening := time.Date(2025, time.September, 11, 23, 30, 0, 0, time.FixedZone("MSK", 3*60*60))
	infos, err = storage.ListDueReminders(ctx, lateEvening)
	require.NoError(t, err)

	titles = titles[:0]
	for _, info := range infos {
		titles = append(titles, info.Title)
	}
	assert.ElementsMatch(t, []string{"Разовое в этот день", "Еженедельное по четвергам"}, titles)
}

func TestStorage_UserLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := SetupTestStorage(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	ctx := context.Background()
	userID := factory.CreateUser(t, "testuser", "test@example.com")

	t.Run("duplicate active email conflicts", func(t *testing.T) {
		_, err := storage.CreateUser(ctx, models.User{
			UUID:         "11111111-1111-1111-1111-111111111111",
			Name:         "double",
			Email:        "test@example.com",
			PasswordHash: "hash",
			Birthday:     time.Date(1991, time.January, 2, 0, 0, 0, 0, time.UTC),
			Active:       true,
			CreatedAt:    time.Now().UTC(),
			UpdatedAt:    time.Now().UTC(),
		})
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("lookup by email", func(t *testing.T) {
		user, err := storage.GetUserByEmail(ctx, "test@example.com")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("soft delete frees email", func(t *testing.T) {
		exists, err := storage.ExistsUser(ctx, userID)
		require.NoError(t, err)
		assert.True(t, exists)

		affected, err := storage.DeleteUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		_, err = storage.GetUser(ctx, userID)
		assert.ErrorIs(t, err, errs.ErrNotFound)

		exists, err = storage.ExistsUser(ctx, userID)
		require.NoError(t, err)
		assert.False(t, exists)

		// Email мягко удалённого пользователя можно использовать повторно.
		factory.CreateUser(t, "reborn", "test@example.com")
	})
}

func TestStorage_NotificationSettingsAndLogs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := SetupTestStorage(t)
	defer cleanup()
	factory := NewTestDataFactory(storage)

	ctx := context.Background()
	userID := factory.CreateUser(t, "testuser", "test@example.com")

	t.Run("settings absent is not an error state", func(t *testing.T) {
		_, err := storage.GetSettingsByUser(ctx, userID)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("upsert then read settings", func(t *testing.T) {
		settings := models.NewDefaultSettings(userID)
		settings.VisualEnabled = false
		settings.DefaultReminderMinutes = 30

		id, err := storage.UpsertSettings(ctx, settings)
		require.NoError(t, err)
		require.NotEmpty(t, id)

		got, err := storage.GetSettingsByUser(ctx, userID)
		require.NoError(t, err)
		assert.True(t, got.EmailEnabled)
		assert.False(t, got.VisualEnabled)
		assert.Equal(t, "22:00", got.QuietHoursStart)
		assert.Equal(t, 30, got.DefaultReminderMinutes)

		// Повторный upsert обновляет ту же запись.
		settings.VisualEnabled = true
		secondID, err := storage.UpsertSettings(ctx, settings)
		require.NoError(t, err)
		assert.Equal(t, id, secondID)
	})

	t.Run("log append and lookups", func(t *testing.T) {
		eventID := factory.CreateSingleEvent(t, userID, "Событие",
			time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC))

		logID, err := storage.CreateLog(ctx, models.NotificationLog{
			EventID:          eventID,
			UserID:           userID,
			NotificationType: models.NotificationEmail,
			SentAt:           time.Now().UTC(),
			Status:           models.StatusSuccess,
		})
		require.NoError(t, err)

		log, err := storage.GetLog(ctx, logID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusSuccess, log.Status)

		byUser, err := storage.ListLogsByUser(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, byUser, 1)

		byEvent, err := storage.ListLogsByEvent(ctx, eventID, userID)
		require.NoError(t, err)
		assert.Len(t, byEvent, 1)

		// Чужому пользователю журнал события не виден.
		strangerID := factory.CreateUser(t, "stranger", "stranger@example.com")
		byEvent, err = storage.ListLogsByEvent(ctx, eventID, strangerID)
		require.NoError(t, err)
		assert.Empty(t, byEvent)

		byStatus, err := storage.ListLogsByStatus(ctx, models.StatusFailure)
		require.NoError(t, err)
		assert.Empty(t, byStatus)
	})
}
