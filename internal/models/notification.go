// Package models содержит модели настроек уведомлений и журнала доставки.
package models

import "time"

// Значения по умолчанию для настроек уведомлений нового пользователя.
const (
	DefaultQuietHoursStart       = "22:00"
	DefaultQuietHoursEnd         = "07:00"
	DefaultReminderMinutesBefore = 15
)

// NotificationStatus определяет исход попытки доставки уведомления.
type NotificationStatus string

const (
	// StatusSent — сообщение поставлено в очередь на доставку.
	StatusSent NotificationStatus = "SENT"
	// StatusSuccess — доставка подтверждена.
	StatusSuccess NotificationStatus = "SUCCESS"
	// StatusFailure — доставка не удалась.
	StatusFailure NotificationStatus = "FAILURE"
)

// NotificationSettings — настройки уведомлений пользователя, одна запись
// на пользователя. Отсутствие записи — допустимое состояние: вызывающий
// код обязан трактовать его как "настройки ещё не заданы", а не как ошибку.
// Тихие часы хранятся в данных, но ядром не применяются.
type NotificationSettings struct {
	ID                     string // Идентификатор записи
	UserID                 string // Пользователь-владелец
	EmailEnabled           bool   // Уведомления по почте включены
	VisualEnabled          bool   // Визуальные уведомления включены
	QuietHoursStart        string // Начало тихих часов, формат "15:04"
	QuietHoursEnd          string // Конец тихих часов, формат "15:04"
	DefaultReminderMinutes int    // Срок напоминания по умолчанию, минуты
}

// NewDefaultSettings возвращает настройки с дефолтами: оба канала включены,
// тихие часы 22:00–07:00, напоминание за 15 минут.
func NewDefaultSettings(userID string) NotificationSettings {
	return NotificationSettings{
		UserID:                 userID,
		EmailEnabled:           true,
		VisualEnabled:          true,
		QuietHoursStart:        DefaultQuietHoursStart,
		QuietHoursEnd:          DefaultQuietHoursEnd,
		DefaultReminderMinutes: DefaultReminderMinutesBefore,
	}
}

// NotificationLog — неизменяемая запись о попытке доставки уведомления.
// Записи только добавляются и никогда не обновляются.
type NotificationLog struct {
	ID               string             // Идентификатор записи
	EventID          string             // Событие, по которому отправлено уведомление
	UserID           string             // Получатель
	NotificationType NotificationType   // Канал доставки
	SentAt           time.Time          // Момент отправки
	Status           NotificationStatus // Исход попытки
}

// DummySettings используется для приёма настроек из JSON-запроса.
type DummySettings struct {
	EmailEnabled           *bool  `json:"email_enabled" validate:"required"`                  // Канал почты
	VisualEnabled          *bool  `json:"visual_enabled" validate:"required"`                 // Визуальный канал
	QuietHoursStart        string `json:"quiet_hours_start,omitempty" validate:"omitempty"`   // Начало тихих часов
	QuietHoursEnd          string `json:"quiet_hours_end,omitempty" validate:"omitempty"`     // Конец тихих часов
	DefaultReminderMinutes int    `json:"default_reminder_minutes" validate:"gte=0,lte=1440"` // Минуты до события
}

// DummyLog используется для приёма записи журнала из JSON-запроса.
type DummyLog struct {
	EventID          string `json:"event_id" validate:"required"`                               // Событие
	NotificationType string `json:"notification_type" validate:"required,oneof=EMAIL VISUAL"`   // Канал
	Status           string `json:"status" validate:"required,oneof=SENT SUCCESS FAILURE"`      // Исход
}
