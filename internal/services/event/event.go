// Package services содержит бизнес-логику для управления событиями календаря
// и кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/crystal-plan/internal/errs"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/month"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

// EventRepository определяет методы для работы с событиями в хранилище.
type EventRepository interface {
	// CreateEvent добавляет новое событие и возвращает его ID.
	CreateEvent(ctx context.Context, event models.Event) (string, error)
	// GetEvent возвращает событие по ID.
	GetEvent(ctx context.Context, id string, onlyActive bool) (*models.Event, error)
	// UpdateEvent обновляет данные события по ID.
	UpdateEvent(ctx context.Context, event models.Event, id string) (int64, error)
	// DeleteEvent мягко удаляет событие по ID.
	DeleteEvent(ctx context.Context, id string) (int64, error)
	// ListEventsByUser возвращает все события пользователя.
	ListEventsByUser(ctx context.Context, userID string, onlyActive bool) ([]*models.Event, error)
	// ListSingleEventsByDate возвращает одноразовые события пользователя на дату.
	ListSingleEventsByDate(ctx context.Context, userID string, date time.Time, onlyActive bool) ([]*models.Event, error)
	// ListWeeklyEventsByDay возвращает еженедельные события пользователя на день недели.
	ListWeeklyEventsByDay(ctx context.Context, userID string, day time.Weekday, onlyActive bool) ([]*models.Event, error)
	// ListWeeklyEventsByUser возвращает все еженедельные события пользователя.
	ListWeeklyEventsByUser(ctx context.Context, userID string, onlyActive bool) ([]*models.Event, error)
	// ListSingleEventsByRange возвращает одноразовые события пользователя в интервале дат.
	ListSingleEventsByRange(ctx context.Context, userID string, start, end time.Time, onlyActive bool) ([]*models.Event, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// EventService реализует бизнес-логику работы с событиями, включая кеширование.
type EventService struct {
	repo  EventRepository
	cache Cache
	log   *slog.Logger
}

// NewEventService создает новый экземпляр EventService.
func NewEventService(repo EventRepository, cache Cache, log *slog.Logger) *EventService {
	return &EventService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

var weekdayNames = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

// ParseWeekday разбирает название дня недели без учета регистра.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToUpper(name)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown weekday %q", errs.ErrInvalidArgument, name)
	}
	return day, nil
}

// eventFromRequest конвертирует DTO запроса в доменное событие.
func eventFromRequest(req models.DummyEvent, userID string) (models.Event, error) {
	event := models.Event{
		Title:            req.Title,
		Description:      req.Description,
		Recurrence:       models.Recurrence(req.Recurrence),
		EventTime:        req.EventTime,
		ReminderTime:     req.ReminderTime,
		Notify:           req.Notify,
		NotificationType: models.NotificationType(req.NotificationType),
		UserID:           userID,
	}

	if req.EventDate != "" {
		date, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			return models.Event{}, fmt.Errorf("%w: invalid event date: %v", errs.ErrInvalidArgument, err)
		}
		event.EventDate = &date
	}

	for _, name := range req.DaysOfWeek {
		day, err := ParseWeekday(name)
		if err != nil {
			return models.Event{}, err
		}
		event.DaysOfWeek = append(event.DaysOfWeek, day)
	}

	return event, nil
}

// Create создает новое событие пользователя, кеширует его и возвращает ID.
func (s *EventService) Create(ctx context.Context, userID string, req models.DummyEvent) (string, error) {
	event, err := eventFromRequest(req, userID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	event.UUID = uuid.New().String()
	event.Active = true
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := event.Validate(); err != nil {
		return "", err
	}

	id, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return "", err
	}

	s.log.Info("created new event", slog.String("id", id))

	event.ID = id
	cacheKey := fmt.Sprintf("event:%s", id)
	if err := s.cache.Set(cacheKey, event, time.Hour); err != nil {
		s.log.Warn("failed to cache event", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return id, nil
}

// Read возвращает событие по ID, используя кеш или репозиторий.
// Событие чужого пользователя не выдается.
func (s *EventService) Read(ctx context.Context, id, userID string) (*models.Event, error) {
	var result *models.Event
	cacheKey := fmt.Sprintf("event:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
		found = false
	}
	if !found {
		result, err = s.repo.GetEvent(ctx, id, true)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	if result.UserID != userID {
		return nil, errs.ErrNotFound
	}
	return result, nil
}

// Update обновляет событие пользователя и обновляет кеш.
func (s *EventService) Update(ctx context.Context, req models.DummyEvent, id, userID string) (int64, error) {
	existing, err := s.repo.GetEvent(ctx, id, true)
	if err != nil {
		return 0, err
	}
	if existing.UserID != userID {
		return 0, errs.ErrNotFound
	}

	event, err := eventFromRequest(req, userID)
	if err != nil {
		return 0, err
	}
	event.UUID = existing.UUID
	event.Active = true
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = time.Now().UTC()

	if err := event.Validate(); err != nil {
		return 0, err
	}

	count, err := s.repo.UpdateEvent(ctx, event, id)
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("event:%s", id)
	event.ID = id
	if err := s.cache.Set(cacheKey, event, time.Hour); err != nil {
		s.log.Warn("failed to update cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return count, nil
}

// Remove мягко удаляет событие пользователя и инвалидирует кеш.
func (s *EventService) Remove(ctx context.Context, id, userID string) (int64, error) {
	existing, err := s.repo.GetEvent(ctx, id, true)
	if err != nil {
		return 0, err
	}
	if existing.UserID != userID {
		return 0, errs.ErrNotFound
	}

	cacheKey := fmt.Sprintf("event:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return s.repo.DeleteEvent(ctx, id)
}

// ListByUser возвращает все активные события пользователя.
func (s *EventService) ListByUser(ctx context.Context, userID string) ([]*models.Event, error) {
	return s.repo.ListEventsByUser(ctx, userID, true)
}

// ListByDate возвращает одноразовые события пользователя на календарную дату.
// Дата приходит строкой в формате 2006-01-02.
func (s *EventService) ListByDate(ctx context.Context, userID, rawDate string) ([]*models.Event, error) {
	date, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", errs.ErrInvalidArgument, err)
	}
	return s.repo.ListSingleEventsByDate(ctx, userID, date, true)
}

// ListByWeekday возвращает еженедельные события пользователя, действующие
// в указанный день недели.
func (s *EventService) ListByWeekday(ctx context.Context, userID, rawDay string) ([]*models.Event, error) {
	day, err := ParseWeekday(rawDay)
	if err != nil {
		return nil, err
	}
	return s.repo.ListWeeklyEventsByDay(ctx, userID, day, true)
}

// ListWeekly возвращает все еженедельные события пользователя.
func (s *EventService) ListWeekly(ctx context.Context, userID string) ([]*models.Event, error) {
	return s.repo.ListWeeklyEventsByUser(ctx, userID, true)
}

// ListByMonth возвращает одноразовые события пользователя за календарный месяц.
func (s *EventService) ListByMonth(ctx context.Context, userID string, year int, m time.Month) ([]*models.Event, error) {
	if m < time.January || m > time.December {
		return nil, fmt.Errorf("%w: invalid month %d", errs.ErrInvalidArgument, m)
	}
	start, end := month.Range(year, m)
	return s.repo.ListSingleEventsByRange(ctx, userID, start, end, true)
}
