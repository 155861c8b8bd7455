// Package list реализует HTTP-обработчик получения списка всех событий
// с участниками.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/sole-app/sole-backend/internal/http/response"
	"github.com/sole-app/sole-backend/internal/lib/sl"
	"github.com/sole-app/sole-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики списка событий.
type Service interface {
	List(ctx context.Context) ([]*models.EventWithAttendees, error)
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
// @Summary Список событий
// @Description Возвращает все события вместе с участниками.
// @Tags Events
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список событий"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /api/events [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	events, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to list events"))
		return
	}

	log.Info("events listed", slog.Int("count", len(events)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"events": events,
	}))
}
