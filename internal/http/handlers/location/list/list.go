// Package list реализует HTTP-обработчик выдачи статического списка
// локаций для карты.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/sole-app/sole-backend/internal/http/response"
	"github.com/sole-app/sole-backend/internal/models"
)

type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Список локаций
// @Description Возвращает статический список точек для карты.
// @Tags Locations
// @Produce  json
// @Success 200 {object} response.Response "Список локаций"
// @Router /api/locations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"locations": models.Locations(),
	}))
}
