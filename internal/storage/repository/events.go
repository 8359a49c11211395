package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/crystal-plan/internal/errs"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

const eventColumns = `id, uuid, title, description, recurrence, event_date, days_of_week,
			      event_time, reminder_time, notify, notification_type, user_id,
			      is_active, created_at, updated_at`

// rowScanner покрывает *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	e := &models.Event{}
	var (
		eventDate        sql.NullTime
		daysOfWeek       []byte
		eventTime        sql.NullString
		reminderTime     sql.NullString
		notificationType sql.NullString
	)
	if err := row.Scan(&e.ID, &e.UUID, &e.Title, &e.Description, &e.Recurrence,
		&eventDate, &daysOfWeek, &eventTime, &reminderTime, &e.Notify,
		&notificationType, &e.UserID, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}

	if eventDate.Valid {
		d := eventDate.Time
		e.EventDate = &d
	}
	if daysOfWeek != nil {
		if err := json.Unmarshal(daysOfWeek, &e.DaysOfWeek); err != nil {
			return nil, err
		}
	}
	e.EventTime = eventTime.String
	e.ReminderTime = reminderTime.String
	e.NotificationType = models.NotificationType(notificationType.String)
	return e, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func daysOfWeekJSON(days []time.Weekday) ([]byte, error) {
	if days == nil {
		return nil, nil
	}
	return json.Marshal(days)
}

// CreateEvent вставляет новое событие и возвращает его ID.
func (s *Storage) CreateEvent(ctx context.Context, event models.Event) (string, error) {
	const op = "storage.CreateEvent"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	days, err := daysOfWeekJSON(event.DaysOfWeek)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO events (uuid, title, description, recurrence, event_date,
			      days_of_week, event_time, reminder_time, notify, notification_type,
			      user_id, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			  RETURNING id`
	var newID string
	err = s.DB.QueryRowContext(ctx, query,
		event.UUID, event.Title, event.Description, event.Recurrence,
		nullableDate(event.EventDate), days, nullableString(event.EventTime),
		nullableString(event.ReminderTime), event.Notify,
		nullableString(string(event.NotificationType)), event.UserID,
		event.Active, event.CreatedAt, event.UpdatedAt).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetEvent возвращает событие по ID. Фильтрация по признаку активности
// задаётся явным параметром onlyActive.
func (s *Storage) GetEvent(ctx context.Context, id string, onlyActive bool) (*models.Event, error) {
	const op = "storage.GetEvent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE id = $1 AND (NOT $2 OR is_active)`
	event, err := scanEvent(s.DB.QueryRowContext(ctx, query, id, onlyActive))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return event, nil
}

// UpdateEvent обновляет данные события по ID и возвращает число изменённых строк.
func (s *Storage) UpdateEvent(ctx context.Context, event models.Event, id string) (int64, error) {
	const op = "storage.UpdateEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	days, err := daysOfWeekJSON(event.DaysOfWeek)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE events
			  SET title = $1, description = $2, recurrence = $3, event_date = $4,
			      days_of_week = $5, event_time = $6, reminder_time = $7, notify = $8,
			      notification_type = $9, updated_at = $10
			  WHERE id = $11 AND is_active`
	result, err := s.DB.ExecContext(ctx, query,
		event.Title, event.Description, event.Recurrence, nullableDate(event.EventDate),
		days, nullableString(event.EventTime), nullableString(event.ReminderTime),
		event.Notify, nullableString(string(event.NotificationType)),
		event.UpdatedAt, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// DeleteEvent выполняет мягкое удаление события и возвращает число
// изменённых строк.
func (s *Storage) DeleteEvent(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE events
			  SET is_active = FALSE, updated_at = now()
			  WHERE id = $1 AND is_active`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ExistsEvent проверяет существование события по ID.
func (s *Storage) ExistsEvent(ctx context.Context, id string, onlyActive bool) (bool, error) {
	const op = "storage.ExistsEvent"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1 AND (NOT $2 OR is_active))`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, id, onlyActive).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

func (s *Storage) listEvents(ctx context.Context, op, query string, args ...any) ([]*models.Event, error) {
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

	var result []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListEventsByUser возвращает все события пользователя, любой вид повторения.
func (s *Storage) ListEventsByUser(ctx context.Context, userID string, onlyActive bool) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE user_id = $1 AND (NOT $2 OR is_active)
			  ORDER BY created_at`
	return s.listEvents(ctx, "storage.ListEventsByUser", query, userID, onlyActive)
}

// ListSingleEventsByDate возвращает одноразовые события пользователя
// на конкретную дату.
func (s *Storage) ListSingleEventsByDate(ctx context.Context, userID string, date time.Time, onlyActive bool) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE user_id = $1 AND recurrence = 'SINGLE' AND event_date = $2
			      AND (NOT $3 OR is_active)
			  ORDER BY event_time NULLS LAST`
	return s.listEvents(ctx, "storage.ListSingleEventsByDate", query, userID, date, onlyActive)
}

// ListWeeklyEventsByDay возвращает еженедельные события пользователя,
// в набор дней которых входит указанный день недели.
func (s *Storage) ListWeeklyEventsByDay(ctx context.Context, userID string, day time.Weekday, onlyActive bool) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE user_id = $1 AND recurrence = 'WEEKLY'
			      AND days_of_week @> to_jsonb($2::int)
			      AND (NOT $3 OR is_active)
			  ORDER BY event_time NULLS LAST`
	return s.listEvents(ctx, "storage.ListWeeklyEventsByDay", query, userID, int(day), onlyActive)
}

// ListWeeklyEventsByUser возвращает все еженедельные события пользователя.
func (s *Storage) ListWeeklyEventsByUser(ctx context.Context, userID string, onlyActive bool) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE user_id = $1 AND recurrence = 'WEEKLY' AND (NOT $2 OR is_active)
			  ORDER BY created_at`
	return s.listEvents(ctx, "storage.ListWeeklyEventsByUser", query, userID, onlyActive)
}

// ListSingleEventsByRange возвращает одноразовые события пользователя
// с датой в пределах [start, end] включительно.
func (s *Storage) ListSingleEventsByRange(ctx context.Context, userID string, start, end time.Time, onlyActive bool) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE user_id = $1 AND recurrence = 'SINGLE'
			      AND event_date BETWEEN $2 AND $3
			      AND (NOT $4 OR is_active)
			  ORDER BY event_date`
	return s.listEvents(ctx, "storage.ListSingleEventsByRange", query, userID, start, end, onlyActive)
}

// ListDueReminders находит события всех пользователей, активные на указанную
// дату и требующие уведомления: одноразовые с совпадающей датой и еженедельные,
// в набор дней которых входит день недели этой даты.
func (s *Storage) ListDueReminders(ctx context.Context, date time.Time) ([]*models.ReminderInfo, error) {
	const op = "storage.ListDueReminders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT e.id, e.uuid, e.user_id, u.email, u.name, e.title, e.description,
			      e.event_time, e.reminder_time, e.notification_type
			  FROM events e
			  JOIN users u ON u.id = e.user_id
			  WHERE e.notify AND e.is_active AND u.is_active
			      AND ((e.recurrence = 'SINGLE' AND e.event_date = $1::date)
			        OR (e.recurrence = 'WEEKLY' AND e.days_of_week @> to_jsonb($2::int)))`
	// Дата передаётся строкой, чтобы сравнение с колонкой date не зависело
	// от часового пояса сессии Postgres.
	rows, err := s.DB.QueryContext(ctx, query, date.Format("2006-01-02"), int(date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ReminderInfo
	for rows.Next() {
		info := &models.ReminderInfo{}
		var eventTime, reminderTime, notificationType sql.NullString
		if err = rows.Scan(&info.EventID, &info.EventUUID, &info.UserID, &info.Email,
			&info.Name, &info.Title, &info.Description, &eventTime, &reminderTime,
			&notificationType); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		info.EventTime = eventTime.String
		info.ReminderTime = reminderTime.String
		info.NotificationType = models.NotificationType(notificationType.String)
		result = append(result, info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
