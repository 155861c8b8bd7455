// Package sender содержит приложение отправителя почтовых уведомлений.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/sole-app/sole-backend/internal/config"
	"github.com/sole-app/sole-backend/internal/lib/smtp"
	"github.com/sole-app/sole-backend/internal/rabbitmq"
	senderservice "github.com/sole-app/sole-backend/internal/services/sender"
)

// App представляет приложение отправителя уведомлений.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New создает новый экземпляр приложения отправителя.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.AddressRabbit, cfg.RetriesRabbit, cfg.DelayRabbit)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTPConnection, logger)
	senderService := senderservice.New(transport, cfg.BaseURL, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run подписывается на очередь уведомлений и работает до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, "notifications.trial", a.senderService.SendTrialExpiringNotification)
	if err != nil {
		a.logger.Error("failed to start notifications.trial consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
