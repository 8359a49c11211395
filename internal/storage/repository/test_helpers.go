package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/crystal-plan/internal/migrations"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

// SetupTestStorage поднимает контейнер PostgreSQL, применяет миграции
// и возвращает готовое хранилище вместе с функцией очистки.
func SetupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("crystalplan_test"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)

	projectRoot, err := filepath.Abs("../../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, filepath.Join(projectRoot, "migrations")))

	cleanup := func() {
		_ = storage.DB.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}

// TestDataFactory содержит методы для создания тестовых данных.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его ID.
func (f *TestDataFactory) CreateUser(t *testing.T, name, email string) string {
	t.Helper()
	now := time.Now().UTC()
	id, err := f.storage.CreateUser(context.Background(), models.User{
		UUID:         uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: "hashedpassword",
		Birthday:     time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return id
}

// CreateSingleEvent создает тестовое одноразовое событие и возвращает его ID.
func (f *TestDataFactory) CreateSingleEvent(t *testing.T, userID, title string, date time.Time) string {
	t.Helper()
	now := time.Now().UTC()
	id, err := f.storage.CreateEvent(context.Background(), models.Event{
		UUID:             uuid.New().String(),
		Title:            title,
		Recurrence:       models.RecurrenceSingle,
		EventDate:        &date,
		EventTime:        "10:00",
		ReminderTime:     "09:45",
		Notify:           true,
		NotificationType: models.NotificationEmail,
		UserID:           userID,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	require.NoError(t, err)
	return id
}

// CreateWeeklyEvent создает тестовое еженедельное событие и возвращает его ID.
func (f *TestDataFactory) CreateWeeklyEvent(t *testing.T, userID, title string, days []time.Weekday) string {
	t.Helper()
	now := time.Now().UTC()
	id, err := f.storage.CreateEvent(context.Background(), models.Event{
		UUID:       uuid.New().String(),
		Title:      title,
		Recurrence: models.RecurrenceWeekly,
		DaysOfWeek: days,
		UserID:     userID,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	require.NoError(t, err)
	return id
}
