// Package upgrade реализует HTTP-обработчик перевода текущего
// пользователя на платный тариф.
package upgrade

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
)

// Request — входные данные для смены тарифа.
type Request struct {
	Subscription string `json:"subscription" validate:"required,oneof=standard premium"`
}

// Service описывает интерфейс бизнес-логики смены тарифа.
type Service interface {
	Upgrade(ctx context.Context, userID int, tier models.Subscription) error
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Перейти на платный тариф
// @Description Переводит текущего пользователя на standard (месяц) или premium (год).
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Выбранный тариф"
// @Success 200 {object} response.Response "Обновлённый пользователь"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Неизвестный тариф"
// @Router /api/subscriptions/upgrade [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.upgrade"

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

	if err := h.service.Upgrade(r.Context(), userID, models.Subscription(req.Subscription)); err != nil {
		log.Error("failed to upgrade subscription", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to upgrade subscription"))
		return
	}

	u, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		log.Error("failed to get user after upgrade", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to get user"))
		return
	}

	log.Info("subscription upgraded",
		slog.Int("id", userID), slog.String("tier", req.Subscription))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": u.View(),
	}))
}
