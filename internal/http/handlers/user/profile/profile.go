// Package profile реализует HTTP-обработчик получения профиля
// текущего пользователя.
package profile

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

// Service описывает интерфейс бизнес-логики чтения профиля.
type Service interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	HasTrialEnded(ctx context.Context, userID int) (bool, error)
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
// @Summary Получить профиль
// @Description Возвращает профиль текущего пользователя и признак истечения пробного периода.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /api/users/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profile"

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

	u, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		log.Error("failed to get user", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to get user"))
		return
	}

	trialEnded, err := h.service.HasTrialEnded(r.Context(), userID)
	if err != nil {
		log.Error("failed to check trial", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to get user"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user":        u.View(),
		"trial_ended": trialEnded,
	}))
}
