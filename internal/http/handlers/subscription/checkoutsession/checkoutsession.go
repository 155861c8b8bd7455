// Package checkoutsession реализует HTTP-обработчик создания платежной
// сессии Stripe для оформления подписки.
package checkoutsession

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/sole-app/sole-backend/internal/http/middlewarectx"
	"github.com/sole-app/sole-backend/internal/http/response"
	"github.com/sole-app/sole-backend/internal/lib/sl"
	"github.com/sole-app/sole-backend/internal/models"
	"github.com/sole-app/sole-backend/internal/paymentprovider"
)

// Request — входные данные для создания платежной сессии.
type Request struct {
	Subscription string `json:"subscription" validate:"required,oneof=standard premium"`
}

// Service описывает интерфейс бизнес-логики создания сессии.
type Service interface {
	CreateSession(ctx context.Context, tier models.Subscription, customerEmail string) (*paymentprovider.CheckoutSession, error)
}

// UserService возвращает данные текущего пользователя.
type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	users    UserService
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, service Service, users UserService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		users:    users,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать платежную сессию
// @Description Создает checkout-сессию Stripe для выбранного тарифа и возвращает URL оплаты. Сама по себе сессия тариф не меняет.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Выбранный тариф"
// @Success 200 {object} response.Response "Созданная сессия"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Неизвестный тариф"
// @Failure 502 {object} response.ErrorResponse "Платёжный провайдер недоступен"
// @Router /api/subscriptions/checkout-session [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.checkoutsession"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		log.Error("failed to get user", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to get user"))
		return
	}

	session, err := h.service.CreateSession(r.Context(), models.Subscription(req.Subscription), u.Email)
	if err != nil {
		log.Error("failed to create checkout session", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to create checkout session"))
		return
	}

	log.Info("checkout session created",
		slog.Int("id", userID), slog.String("session_id", session.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"session_id": session.ID,
		"url":        session.URL,
	}))
}
