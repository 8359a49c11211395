// Package models содержит доменные структуры планировщика: событие календаря,
// пользователя и записи о нотификациях. Структуры используются в бизнес-логике
// и при работе с хранилищем.
package models

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/crystal-plan/internal/errs"
)

// Recurrence определяет вид повторения события.
type Recurrence string

const (
	// RecurrenceSingle — одноразовое событие, привязанное к календарной дате.
	RecurrenceSingle Recurrence = "SINGLE"
	// RecurrenceWeekly — еженедельное событие, привязанное к набору дней недели.
	RecurrenceWeekly Recurrence = "WEEKLY"
)

// NotificationType определяет канал доставки уведомления.
type NotificationType string

const (
	// NotificationEmail — уведомление по электронной почте.
	NotificationEmail NotificationType = "EMAIL"
	// NotificationVisual — визуальное уведомление в интерфейсе.
	NotificationVisual NotificationType = "VISUAL"
)

// DefaultReminderTime подставляется валидатором, если время напоминания
// не задано, а уведомления включены.
const DefaultReminderTime = "10:00"

// Ошибки валидации события. Каждая оборачивает errs.ErrInvalidArgument,
// чтобы обработчики могли сопоставить их с HTTP 400 через errors.Is.
var (
	ErrMissingOwner            = fmt.Errorf("%w: event owner is required", errs.ErrInvalidArgument)
	ErrMissingEventDate        = fmt.Errorf("%w: event date is required for SINGLE recurrence", errs.ErrInvalidArgument)
	ErrMissingWeekdays         = fmt.Errorf("%w: at least one weekday is required for WEEKLY recurrence", errs.ErrInvalidArgument)
	ErrTooManyWeekdays         = fmt.Errorf("%w: weekday set cannot exceed 7 distinct days", errs.ErrInvalidArgument)
	ErrMissingEventTime        = fmt.Errorf("%w: event time is required when notifications are enabled", errs.ErrInvalidArgument)
	ErrMissingNotificationType = fmt.Errorf("%w: notification type is required when notifications are enabled", errs.ErrInvalidArgument)
)

// Event представляет событие календаря пользователя.
// Поле EventDate имеет смысл только для SINGLE, DaysOfWeek — только для WEEKLY.
// Времена суток хранятся строками в формате "15:04".
type Event struct {
	ID               string           // Идентификатор, назначается хранилищем
	UUID             string           // Внешний uuid, назначается при создании
	Title            string           // Заголовок события
	Description      string           // Описание события
	Recurrence       Recurrence       // Вид повторения: SINGLE или WEEKLY
	EventDate        *time.Time       // Дата события (только SINGLE)
	DaysOfWeek       []time.Weekday   // Дни недели (только WEEKLY)
	EventTime        string           // Время события, обязательно при Notify
	ReminderTime     string           // Время напоминания, по умолчанию 10:00
	Notify           bool             // Включены ли уведомления
	NotificationType NotificationType // Канал уведомления, пусто при Notify=false
	UserID           string           // Владелец события
	Active           bool             // Признак мягкого удаления
	CreatedAt        time.Time        // Время создания
	UpdatedAt        time.Time        // Время последнего обновления
}

// Validate проверяет инварианты события перед сохранением и нормализует
// поля уведомлений: подставляет ReminderTime по умолчанию при включённых
// уведомлениях и очищает NotificationType при выключенных.
// Проверка владельца выполняется первой, остальные правила независимы
// и прерываются на первом нарушении.
func (e *Event) Validate() error {
	if e.UserID == "" {
		return ErrMissingOwner
	}

	if e.Recurrence == RecurrenceSingle && e.EventDate == nil {
		return ErrMissingEventDate
	}

	if e.Recurrence == RecurrenceWeekly {
		if len(e.DaysOfWeek) == 0 {
			return ErrMissingWeekdays
		}
		// Набор приходит срезом от вызывающего кода, дубликаты считаются один раз.
		distinct := make(map[time.Weekday]struct{}, len(e.DaysOfWeek))
		for _, day := range e.DaysOfWeek {
			distinct[day] = struct{}{}
		}
		if len(distinct) > 7 {
			return ErrTooManyWeekdays
		}
	}

	if e.Notify {
		if e.EventTime == "" {
			return ErrMissingEventTime
		}
		if e.NotificationType == "" {
			return ErrMissingNotificationType
		}
		if e.ReminderTime == "" {
			e.ReminderTime = DefaultReminderTime
		}
	} else {
		e.NotificationType = ""
	}

	return nil
}

// DummyEvent используется для приёма данных события из JSON-запроса,
// прежде чем конвертировать их в Event. Дата приходит строкой в формате
// 2006-01-02, дни недели — названиями ("MONDAY"), чтобы их можно было
// валидировать и парсить вручную.
type DummyEvent struct {
	Title            string   `json:"title" validate:"required"`                           // Заголовок
	Description      string   `json:"description,omitempty" validate:"omitempty"`          // Описание
	Recurrence       string   `json:"recurrence" validate:"required,oneof=SINGLE WEEKLY"`  // Вид повторения
	EventDate        string   `json:"event_date,omitempty" validate:"omitempty"`           // Дата события (SINGLE)
	DaysOfWeek       []string `json:"days_of_week,omitempty" validate:"omitempty,max=7"`   // Дни недели (WEEKLY)
	EventTime        string   `json:"event_time,omitempty" validate:"omitempty"`           // Время события
	ReminderTime     string   `json:"reminder_time,omitempty" validate:"omitempty"`        // Время напоминания
	Notify           bool     `json:"notify"`                                              // Включены ли уведомления
	NotificationType string   `json:"notification_type,omitempty" validate:"omitempty,oneof=EMAIL VISUAL"` // Канал уведомления
}

// ReminderInfo — сообщение для очереди напоминаний, публикуется планировщиком
// и потребляется отправителем.
type ReminderInfo struct {
	EventID          string           `json:"event_id"`
	EventUUID        string           `json:"event_uuid"`
	UserID           string           `json:"user_id"`
	Email            string           `json:"email"`
	Name             string           `json:"name"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	EventTime        string           `json:"event_time"`
	ReminderTime     string           `json:"reminder_time"`
	NotificationType NotificationType `json:"notification_type"`
}
