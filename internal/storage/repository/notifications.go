package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/crystal-plan/internal/errs"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

const settingsColumns = `id, user_id, email_enabled, visual_enabled,
			      quiet_hours_start, quiet_hours_end, default_reminder_minutes`

const logColumns = `id, event_id, user_id, notification_type, sent_at, status`

func scanSettings(row rowScanner) (*models.NotificationSettings, error) {
	s := &models.NotificationSettings{}
	if err := row.Scan(&s.ID, &s.UserID, &s.EmailEnabled, &s.VisualEnabled,
		&s.QuietHoursStart, &s.QuietHoursEnd, &s.DefaultReminderMinutes); err != nil {
		return nil, err
	}
	return s, nil
}

func scanLog(row rowScanner) (*models.NotificationLog, error) {
	l := &models.NotificationLog{}
	if err := row.Scan(&l.ID, &l.EventID, &l.UserID, &l.NotificationType,
		&l.SentAt, &l.Status); err != nil {
		return nil, err
	}
	return l, nil
}

// UpsertSettings сохраняет настройки уведомлений пользователя, создавая
// запись при первом обращении. Возвращает ID записи.
func (s *Storage) UpsertSettings(ctx context.Context, settings models.NotificationSettings) (string, error) {
	const op = "storage.UpsertSettings"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO notification_settings (user_id, email_enabled, visual_enabled,
			      quiet_hours_start, quiet_hours_end, default_reminder_minutes)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (user_id) DO UPDATE
			  SET email_enabled = EXCLUDED.email_enabled,
			      visual_enabled = EXCLUDED.visual_enabled,
			      quiet_hours_start = EXCLUDED.quiet_hours_start,
			      quiet_hours_end = EXCLUDED.quiet_hours_end,
			      default_reminder_minutes = EXCLUDED.default_reminder_minutes
			  RETURNING id`
	var id string
	err := s.DB.QueryRowContext(ctx, query,
		settings.UserID, settings.EmailEnabled, settings.VisualEnabled,
		settings.QuietHoursStart, settings.QuietHoursEnd,
		settings.DefaultReminderMinutes).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetSettingsByUser возвращает настройки уведомлений пользователя.
// Отсутствие записи отображается в errs.ErrNotFound: это допустимое
// состояние, и вызывающий код решает, как его трактовать.
func (s *Storage) GetSettingsByUser(ctx context.Context, userID string) (*models.NotificationSettings, error) {
	const op = "storage.GetSettingsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + settingsColumns + `
			  FROM notification_settings
			  WHERE user_id = $1`
	settings, err := scanSettings(s.DB.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return settings, nil
}

// CreateLog добавляет запись в журнал доставки. Журнал только пополняется,
// обновления записей не предусмотрены.
func (s *Storage) CreateLog(ctx context.Context, log models.NotificationLog) (string, error) {
	const op = "storage.CreateLog"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO notification_logs (event_id, user_id, notification_type,
			      sent_at, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var id string
	err := s.DB.QueryRowContext(ctx, query,
		log.EventID, log.UserID, log.NotificationType, log.SentAt, log.Status).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetLog возвращает запись журнала по ID.
func (s *Storage) GetLog(ctx context.Context, id string) (*models.NotificationLog, error) {
	const op = "storage.GetLog"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + logColumns + `
			  FROM notification_logs
			  WHERE id = $1`
	log, err := scanLog(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return log, nil
}

func (s *Storage) listLogs(ctx context.Context, op, query string, args ...any) ([]*models.NotificationLog, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.NotificationLog
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, log)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListLogsByUser возвращает записи журнала пользователя.
func (s *Storage) ListLogsByUser(ctx context.Context, userID string) ([]*models.NotificationLog, error) {
	query := `SELECT ` + logColumns + `
			  FROM notification_logs
			  WHERE user_id = $1
			  ORDER BY sent_at DESC`
	return s.listLogs(ctx, "storage.ListLogsByUser", query, userID)
}

// ListLogsByEvent возвращает записи журнала по событию в пределах одного
// пользователя: чужие события отдают пустой список.
func (s *Storage) ListLogsByEvent(ctx context.Context, eventID, userID string) ([]*models.NotificationLog, error) {
	query := `SELECT ` + logColumns + `
			  FROM notification_logs
			  WHERE event_id = $1 AND user_id = $2
			  ORDER BY sent_at DESC`
	return s.listLogs(ctx, "storage.ListLogsByEvent", query, eventID, userID)
}

// ListLogsByStatus возвращает записи журнала с данным исходом доставки.
func (s *Storage) ListLogsByStatus(ctx context.Context, status models.NotificationStatus) ([]*models.NotificationLog, error) {
	query := `SELECT ` + logColumns + `
			  FROM notification_logs
			  WHERE status = $1
			  ORDER BY sent_at DESC`
	return s.listLogs(ctx, "storage.ListLogsByStatus", query, status)
}
