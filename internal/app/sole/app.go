// Package sole собирает основное HTTP-приложение: хранилище, кеш,
// сервисы и маршруты.
package sole

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/sole-app/sole-backend/internal/cache"
	"github.com/sole-app/sole-backend/internal/config"
	"github.com/sole-app/sole-backend/internal/lib/jwt"
	"github.com/sole-app/sole-backend/internal/lib/smtp"
	"github.com/sole-app/sole-backend/internal/lib/uploads"
	"github.com/sole-app/sole-backend/internal/migrations"
	"github.com/sole-app/sole-backend/internal/paymentprovider"
	checkoutservice "github.com/sole-app/sole-backend/internal/services/checkout"
	eventservice "github.com/sole-app/sole-backend/internal/services/event"
	senderservice "github.com/sole-app/sole-backend/internal/services/sender"
	userservice "github.com/sole-app/sole-backend/internal/services/user"
	"github.com/sole-app/sole-backend/internal/storage/repository"
)

// App представляет основное приложение.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создает новый экземпляр приложения.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	files, err := uploads.NewStore(cfg.UploadsDir)
	if err != nil {
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTPConnection, logger)
	mailer := senderservice.New(transport, cfg.BaseURL, logger)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	userService := userservice.New(db, jwtMaker, mailer, logger)
	eventService := eventservice.New(db, cacheRedis, logger)
	checkoutService := checkoutservice.New(
		paymentprovider.NewClient(cfg.StripeConnection.SecretKey),
		cfg.StripeConnection,
		logger,
	)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, jwtMaker, userService, eventService, checkoutService, files, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и завершает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
