package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/crystal-plan/internal/errs"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) UpsertSettings(ctx context.Context, settings models.NotificationSettings) (string, error) {
	args := m.Called(ctx, settings)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetSettingsByUser(ctx context.Context, userID string) (*models.NotificationSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationSettings), args.Error(1)
}
func (m *RepoMock) CreateLog(ctx context.Context, log models.NotificationLog) (string, error) {
	args := m.Called(ctx, log)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetLog(ctx context.Context, id string) (*models.NotificationLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationLog), args.Error(1)
}
func (m *RepoMock) ListLogsByUser(ctx context.Context, userID string) ([]*models.NotificationLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NotificationLog), args.Error(1)
}
func (m *RepoMock) ListLogsByEvent(ctx context.Context, eventID, userID string) ([]*models.NotificationLog, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NotificationLog), args.Error(1)
}
func (m *RepoMock) ListLogsByStatus(ctx context.Context, status models.NotificationStatus) ([]*models.NotificationLog, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NotificationLog), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestNotificationService_GetSettings(t *testing.T) {
	stored := &models.NotificationSettings{
		ID:           "5",
		UserID:       "1",
		EmailEnabled: true,
	}

	repo := new(RepoMock)
	repo.On("GetSettingsByUser", mock.Anything, "1").Return(stored, nil)

	svc := NewNotificationService(repo, newNoopLogger())
	got, err := svc.GetSettings(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestNotificationService_GetSettings_AbsentReturnsDefaults(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSettingsByUser", mock.Anything, "1").Return(nil, errs.ErrNotFound)

	svc := NewNotificationService(repo, newNoopLogger())
	got, err := svc.GetSettings(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, "1", got.UserID)
	assert.True(t, got.EmailEnabled)
	assert.True(t, got.VisualEnabled)
	assert.Equal(t, models.DefaultQuietHoursStart, got.QuietHoursStart)
	assert.Equal(t, models.DefaultReminderMinutesBefore, got.DefaultReminderMinutes)
}

func TestNotificationService_UpdateSettings(t *testing.T) {
	enabled := true
	disabled := false
	req := models.DummySettings{
		EmailEnabled:           &enabled,
		VisualEnabled:          &disabled,
		DefaultReminderMinutes: 30,
	}

	repo := new(RepoMock)
	repo.On("UpsertSettings", mock.Anything, mock.MatchedBy(func(s models.NotificationSettings) bool {
		return s.UserID == "1" &&
			s.EmailEnabled &&
			!s.VisualEnabled &&
			s.QuietHoursStart == models.DefaultQuietHoursStart &&
			s.DefaultReminderMinutes == 30
	})).Return("5", nil)

	svc := NewNotificationService(repo, newNoopLogger())
	id, err := svc.UpdateSettings(context.Background(), "1", req)

	require.NoError(t, err)
	assert.Equal(t, "5", id)
	repo.AssertExpectations(t)
}

func TestNotificationService_CreateLog(t *testing.T) {
	req := models.DummyLog{
		EventID:          "42",
		NotificationType: "EMAIL",
		Status:           "SUCCESS",
	}

	repo := new(RepoMock)
	repo.On("CreateLog", mock.Anything, mock.MatchedBy(func(l models.NotificationLog) bool {
		return l.EventID == "42" &&
			l.UserID == "1" &&
			l.NotificationType == models.NotificationEmail &&
			l.Status == models.StatusSuccess &&
			!l.SentAt.IsZero()
	})).Return("7", nil)

	svc := NewNotificationService(repo, newNoopLogger())
	id, err := svc.CreateLog(context.Background(), "1", req)

	require.NoError(t, err)
	assert.Equal(t, "7", id)
	repo.AssertExpectations(t)
}

func TestNotificationService_ListLogs(t *testing.T) {
	expected := []*models.NotificationLog{{ID: "7"}}

	repo := new(RepoMock)
	repo.On("ListLogsByUser", mock.Anything, "1").Return(expected, nil)
	repo.On("ListLogsByEvent", mock.Anything, "42", "1").Return(expected, nil)

	svc := NewNotificationService(repo, newNoopLogger())

	byUser, err := svc.ListLogsByUser(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, expected, byUser)

	byEvent, err := svc.ListLogsByEvent(context.Background(), "42", "1")
	require.NoError(t, err)
	assert.Equal(t, expected, byEvent)
	repo.AssertExpectations(t)
}

func TestNotificationService_ListLogsByStatus(t *testing.T) {
	expected := []*models.NotificationLog{{ID: "7", Status: models.StatusFailure}}

	repo := new(RepoMock)
	repo.On("ListLogsByStatus", mock.Anything, models.StatusFailure).Return(expected, nil)

	svc := NewNotificationService(repo, newNoopLogger())

	got, err := svc.ListLogsByStatus(context.Background(), "FAILURE")
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	_, err = svc.ListLogsByStatus(context.Background(), "PENDING")
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	repo.AssertNotCalled(t, "ListLogsByStatus", mock.Anything, models.NotificationStatus("PENDING"))
}
