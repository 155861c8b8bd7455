// Package scheduler по расписанию находит пользователей с истекающим
// сегодня пробным периодом и публикует уведомления в RabbitMQ.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/sole-app/sole-backend/internal/lib/sl"
	"github.com/sole-app/sole-backend/internal/models"
	"github.com/sole-app/sole-backend/internal/rabbitmq"
)

// Repository описывает выборку пользователей для уведомлений.
type Repository interface {
	FindTrialEndingToday(ctx context.Context) ([]*models.User, error)
}

// Service отвечает за поиск истекающих пробных периодов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Run запускает ежедневный обход: первый сразу, дальше раз в сутки.
// Блокируется до отмены контекста.
func (s *Service) Run(ctx context.Context, channel *amqp.Channel) {
	s.runOnce(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) runOnce(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find trials ending today")
	users, err := s.repo.FindTrialEndingToday(ctx)
	if err != nil {
		s.log.Error("failed to find users", sl.Err(err))
		return
	}
	if len(users) == 0 {
		s.log.Info("no expiring trials found")
		return
	}
	s.log.Info("found expiring trials", "count", len(users))
	for _, u := range users {
		msg := models.TrialNotification{
			UserID:   u.ID,
			Username: u.Username,
			Email:    u.Email,
		}
		if u.TrialEndDate != nil {
			msg.TrialEndDate = *u.TrialEndDate
		}
		if err := rabbitmq.PublishMessage(channel, "notifications", "trial_expiring", msg); err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
