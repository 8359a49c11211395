// Package services содержит бизнес-логику настроек уведомлений и журнала доставки.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/crystal-plan/internal/errs"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

// NotificationRepository определяет методы для работы с настройками
// уведомлений и журналом доставки в хранилище.
type NotificationRepository interface {
	// UpsertSettings создает или обновляет настройки пользователя.
	UpsertSettings(ctx context.Context, settings models.NotificationSettings) (string, error)
	// GetSettingsByUser возвращает настройки пользователя.
	GetSettingsByUser(ctx context.Context, userID string) (*models.NotificationSettings, error)
	// CreateLog добавляет запись в журнал доставки.
	CreateLog(ctx context.Context, log models.NotificationLog) (string, error)
	// GetLog возвращает запись журнала по ID.
	GetLog(ctx context.Context, id string) (*models.NotificationLog, error)
	// ListLogsByUser возвращает журнал пользователя.
	ListLogsByUser(ctx context.Context, userID string) ([]*models.NotificationLog, error)
	// ListLogsByEvent возвращает журнал по событию пользователя.
	ListLogsByEvent(ctx context.Context, eventID, userID string) ([]*models.NotificationLog, error)
	// ListLogsByStatus возвращает журнал по исходу доставки.
	ListLogsByStatus(ctx context.Context, status models.NotificationStatus) ([]*models.NotificationLog, error)
}

// NotificationService реализует операции с настройками уведомлений и журналом.
type NotificationService struct {
	repo NotificationRepository
	log  *slog.Logger
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(repo NotificationRepository, log *slog.Logger) *NotificationService {
	return &NotificationService{
		repo: repo,
		log:  log,
	}
}

// GetSettings возвращает настройки пользователя. Отсутствие записи не
// считается ошибкой: возвращаются настройки по умолчанию.
func (s *NotificationService) GetSettings(ctx context.Context, userID string) (*models.NotificationSettings, error) {
	settings, err := s.repo.GetSettingsByUser(ctx, userID)
	if errors.Is(err, errs.ErrNotFound) {
		defaults := models.NewDefaultSettings(userID)
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettings создает или обновляет настройки пользователя.
func (s *NotificationService) UpdateSettings(ctx context.Context, userID string, req models.DummySettings) (string, error) {
	settings := models.NotificationSettings{
		UserID:                 userID,
		EmailEnabled:           *req.EmailEnabled,
		VisualEnabled:          *req.VisualEnabled,
		QuietHoursStart:        req.QuietHoursStart,
		QuietHoursEnd:          req.QuietHoursEnd,
		DefaultReminderMinutes: req.DefaultReminderMinutes,
	}
	if settings.QuietHoursStart == "" {
		settings.QuietHoursStart = models.DefaultQuietHoursStart
	}
	if settings.QuietHoursEnd == "" {
		settings.QuietHoursEnd = models.DefaultQuietHoursEnd
	}
	if settings.DefaultReminderMinutes == 0 {
		settings.DefaultReminderMinutes = models.DefaultReminderMinutesBefore
	}

	id, err := s.repo.UpsertSettings(ctx, settings)
	if err != nil {
		return "", err
	}
	s.log.Info("updated notification settings", slog.String("user_id", userID))
	return id, nil
}

// CreateLog добавляет запись о попытке доставки в журнал.
func (s *NotificationService) CreateLog(ctx context.Context, userID string, req models.DummyLog) (string, error) {
	return s.repo.CreateLog(ctx, models.NotificationLog{
		EventID:          req.EventID,
		UserID:           userID,
		NotificationType: models.NotificationType(req.NotificationType),
		SentAt:           time.Now().UTC(),
		Status:           models.NotificationStatus(req.Status),
	})
}

// GetLog возвращает запись журнала по ID.
func (s *NotificationService) GetLog(ctx context.Context, id string) (*models.NotificationLog, error) {
	return s.repo.GetLog(ctx, id)
}

// ListLogsByUser возвращает журнал доставки пользователя.
func (s *NotificationService) ListLogsByUser(ctx context.Context, userID string) ([]*models.NotificationLog, error) {
	return s.repo.ListLogsByUser(ctx, userID)
}

// ListLogsByEvent возвращает журнал доставки по событию. Выборка ограничена
// текущим пользователем: журнал чужого события выглядит пустым.
func (s *NotificationService) ListLogsByEvent(ctx context.Context, eventID, userID string) ([]*models.NotificationLog, error) {
	return s.repo.ListLogsByEvent(ctx, eventID, userID)
}

// ListLogsByStatus возвращает записи журнала с данным исходом доставки.
func (s *NotificationService) ListLogsByStatus(ctx context.Context, rawStatus string) ([]*models.NotificationLog, error) {
	const op = "services.notification.ListLogsByStatus"
	status := models.NotificationStatus(rawStatus)
	switch status {
	case models.StatusSent, models.StatusSuccess, models.StatusFailure:
	default:
		return nil, fmt.Errorf("%s: unknown status %q: %w", op, rawStatus, errs.ErrInvalidArgument)
	}
	return s.repo.ListLogsByStatus(ctx, status)
}
