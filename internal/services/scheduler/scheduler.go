// Package services содержит планировщик напоминаний: периодически находит
// события на сегодня и публикует их в очередь уведомлений.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/crystal-plan/internal/lib/sl"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
	"github.com/magabrotheeeer/crystal-plan/internal/rabbitmq"
)

// ReminderRepository находит события, по которым пора отправлять напоминания.
type ReminderRepository interface {
	// ListDueReminders возвращает напоминания по активным событиям на дату:
	// одноразовые на эту дату и еженедельные на её день недели.
	ListDueReminders(ctx context.Context, date time.Time) ([]*models.ReminderInfo, error)
}

// SchedulerService периодически публикует напоминания в очередь.
type SchedulerService struct {
	repo         ReminderRepository
	log          *slog.Logger
	tickInterval time.Duration
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo ReminderRepository, log *slog.Logger, tickInterval time.Duration) *SchedulerService {
	return &SchedulerService{
		repo:         repo,
		log:          log,
		tickInterval: tickInterval,
	}
}

// Run запускает цикл планировщика до отмены контекста.
func (s *SchedulerService) Run(ctx context.Context, channel *amqp.Channel) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	s.PublishDueReminders(ctx, channel)
	for {
		select {
		case <-ticker.C:
			s.PublishDueReminders(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

// PublishDueReminders находит напоминания на сегодня и публикует каждое
// в очередь уведомлений.
func (s *SchedulerService) PublishDueReminders(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting to find due reminders")

	today := time.Now().UTC().Truncate(24 * time.Hour)
	reminders, err := s.repo.ListDueReminders(ctx, today)
	if err != nil {
		s.log.Error("failed to find due reminders", sl.Err(err))
		return
	}

	for _, reminder := range reminders {
		err = rabbitmq.PublishMessage(channel, rabbitmq.Exchange, rabbitmq.RemindersRoutingKey, reminder)
		if err != nil {
			s.log.Error("failed to publish reminder",
				slog.String("event_id", reminder.EventID), sl.Err(err))
			continue
		}
		s.log.Info("published reminder", slog.String("event_id", reminder.EventID))
	}
}
