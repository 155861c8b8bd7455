// Package cancel реализует HTTP-обработчик отказа от платного тарифа:
// пользователь возвращается на free_trial без даты окончания.
package cancel

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/sole-app/sole-backend/internal/http/middlewarectx"
	"github.com/sole-app/sole-backend/internal/http/response"
	"github.com/sole-app/sole-backend/internal/lib/sl"
	"github.com/sole-app/sole-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики отмены тарифа.
type Service interface {
	Downgrade(ctx context.Context, userID int) error
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отказаться от платного тарифа
// @Description Возвращает текущего пользователя на free_trial и очищает дату окончания периода.
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Обновлённый пользователь"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /api/subscriptions/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.cancel"

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

	if err := h.service.Downgrade(r.Context(), userID); err != nil {
		log.Error("failed to cancel subscription", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to cancel subscription"))
		return
	}

	u, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		log.Error("failed to get user after cancel", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to get user"))
		return
	}

	log.Info("subscription cancelled", slog.Int("id", userID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": u.View(),
	}))
}
