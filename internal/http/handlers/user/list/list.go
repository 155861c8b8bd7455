// Package list реализует HTTP-обработчик получения списка пользователей,
// используемого для выбора участников события.
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

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	List(ctx context.Context) ([]*models.User, error)
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
// @Summary Список пользователей
// @Description Возвращает всех пользователей без хэшей паролей.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список пользователей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /api/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to list users"))
		return
	}

	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}

	log.Info("users listed", slog.Int("count", len(views)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"users": views,
	}))
}
