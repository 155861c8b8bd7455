// Package health реализует HTTP-обработчик проверки готовности сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/sole-app/sole-backend/internal/http/response"
)

// Checker проверяет доступность хранилища.
type Checker interface {
	Ping() error
}

type Handler struct {
	log     *slog.Logger
	checker Checker
}

// New создает новый Handler с переданными логгером и проверкой хранилища.
func New(log *slog.Logger, checker Checker) *Handler {
	return &Handler{
		log:     log,
		checker: checker,
	}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Description Возвращает ok, если сервис и база данных доступны.
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response "Сервис готов"
// @Failure 503 {object} response.ErrorResponse "База данных недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.checker.Ping(); err != nil {
		h.log.Error("health check failed", slog.String("op", op))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
