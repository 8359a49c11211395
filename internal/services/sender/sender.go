// Package services содержит отправителя напоминаний: получает сообщения
// из очереди, проверяет настройки пользователя и отправляет письма.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/crystal-plan/internal/errs"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/sl"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

// SettingsProvider читает настройки уведомлений пользователя.
type SettingsProvider interface {
	GetSettingsByUser(ctx context.Context, userID string) (*models.NotificationSettings, error)
}

// LogWriter пишет записи о попытках доставки.
type LogWriter interface {
	CreateLog(ctx context.Context, log models.NotificationLog) (string, error)
}

// Mailer отправляет письмо получателю.
type Mailer interface {
	Send(to, subject, body string) error
}

// SenderService обрабатывает напоминания из очереди.
type SenderService struct {
	settings SettingsProvider
	logs     LogWriter
	mailer   Mailer
	log      *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(settings SettingsProvider, logs LogWriter, mailer Mailer, log *slog.Logger) *SenderService {
	return &SenderService{
		settings: settings,
		logs:     logs,
		mailer:   mailer,
		log:      log,
	}
}

// SendReminder обрабатывает одно сообщение очереди: проверяет настройки
// получателя, отправляет письмо и фиксирует исход в журнале.
// Выключенный канал не считается ошибкой обработки.
func (s *SenderService) SendReminder(ctx context.Context, body []byte) error {
	var message models.ReminderInfo
	if err := json.Unmarshal(body, &message); err != nil {
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	settings, err := s.settings.GetSettingsByUser(ctx, message.UserID)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		// Отсутствие настроек трактуется как дефолты.
		defaults := models.NewDefaultSettings(message.UserID)
		settings = &defaults
	}

	if message.NotificationType != models.NotificationEmail {
		s.log.Info("skipping non-email reminder",
			slog.String("event_id", message.EventID),
			slog.String("type", string(message.NotificationType)))
		return nil
	}
	if !settings.EmailEnabled {
		s.log.Info("email channel disabled, skipping reminder",
			slog.String("user_id", message.UserID))
		return nil
	}

	subject := fmt.Sprintf("Напоминание: %s", message.Title)
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nНапоминаем о событии «%s» сегодня в %s.",
		message.Name, message.Title, message.EventTime)
	if message.Description != "" {
		bodyText += "\n\n" + message.Description
	}

	sendErr := s.mailer.Send(message.Email, subject, bodyText)

	status := models.StatusSuccess
	if sendErr != nil {
		status = models.StatusFailure
		s.log.Error("failed to send reminder email",
			slog.String("event_id", message.EventID), sl.Err(sendErr))
	} else {
		s.log.Info("reminder email sent",
			slog.String("event_id", message.EventID),
			slog.String("to", message.Email))
	}

	if _, err := s.logs.CreateLog(ctx, models.NotificationLog{
		EventID:          message.EventID,
		UserID:           message.UserID,
		NotificationType: message.NotificationType,
		SentAt:           time.Now().UTC(),
		Status:           status,
	}); err != nil {
		s.log.Error("failed to write notification log", sl.Err(err))
	}

	return sendErr
}
