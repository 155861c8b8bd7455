// Package listuser реализует HTTP-обработчик получения событий,
// в которых текущий пользователь числится участником.
package listuser

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

// Service описывает интерфейс бизнес-логики выборки событий пользователя.
type Service interface {
	ListForUser(ctx context.Context, userID int) ([]*models.EventWithAttendees, error)
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
// @Summary События пользователя
// @Description Возвращает события, где текущий пользователь — участник.
// @Tags Events
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список событий"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /api/events/my [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.listuser"

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

	events, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to list user events", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to list events"))
		return
	}

	log.Info("user events listed", slog.Int("count", len(events)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"events": events,
	}))
}
