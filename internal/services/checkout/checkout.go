// Package checkout создает платежные сессии Stripe для оформления
// подписки выбранного тарифа.
package checkout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sole-app/sole-backend/internal/apperr"
	"github.com/sole-app/sole-backend/internal/config"
	"github.com/sole-app/sole-backend/internal/lib/sl"
	"github.com/sole-app/sole-backend/internal/models"
	"github.com/sole-app/sole-backend/internal/paymentprovider"
)

// PaymentProvider описывает контракт платежного провайдера.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req paymentprovider.CreateSessionRequest) (*paymentprovider.CheckoutSession, error)
}

// Service отвечает за создание checkout-сессий.
type Service struct {
	provider PaymentProvider
	cfg      config.StripeConnection
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(provider PaymentProvider, cfg config.StripeConnection, log *slog.Logger) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		log:      log,
	}
}

// CreateSession создает checkout-сессию для платного тарифа и возвращает
// URL оплаты. Оплата подтверждается отдельно, сессия сама по себе тариф
// не меняет.
func (s *Service) CreateSession(ctx context.Context, tier models.Subscription, customerEmail string) (*paymentprovider.CheckoutSession, error) {
	var priceID string
	switch tier {
	case models.SubscriptionStandard:
		priceID = s.cfg.PriceIDStandard
	case models.SubscriptionPremium:
		priceID = s.cfg.PriceIDPremium
	default:
		return nil, fmt.Errorf("unknown subscription tier %q: %w", tier, apperr.ErrValidation)
	}

	session, err := s.provider.CreateCheckoutSession(ctx, paymentprovider.CreateSessionRequest{
		PriceID:       priceID,
		Quantity:      1,
		Mode:          "subscription",
		SuccessURL:    s.cfg.SuccessURL,
		CancelURL:     s.cfg.CancelURL,
		CustomerEmail: customerEmail,
	})
	if err != nil {
		s.log.Error("failed to create checkout session", sl.Err(err))
		return nil, fmt.Errorf("create checkout session: %w", apperr.ErrDependency)
	}

	s.log.Info("created checkout session",
		slog.String("session_id", session.ID), slog.String("tier", string(tier)))
	return session, nil
}
