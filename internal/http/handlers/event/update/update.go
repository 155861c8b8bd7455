// Package update реализует HTTP-обработчик редактирования события.
//
// Редактирование полностью заменяет состав участников: прежние связи
// удаляются, новые записываются в той же транзакции. Пустой список
// участников допустим и очищает состав.
package update

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/sole-app/sole-backend/internal/http/response"
	"github.com/sole-app/sole-backend/internal/lib/sl"
	"github.com/sole-app/sole-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики редактирования события.
type Service interface {
	Edit(ctx context.Context, id int, req models.DummyEditEvent) (*models.EventWithAttendees, error)
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
// @Summary Отредактировать событие
// @Description Обновляет событие и полностью заменяет состав участников. Неизвестный участник отклоняет всю операцию.
// @Tags Events
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID события"
// @Param request body models.DummyEditEvent true "Новые данные события"
// @Success 200 {object} response.Response "Обновлённое событие"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или id"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или неизвестный участник"
// @Router /api/events/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.DummyEditEvent
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	event, err := h.service.Edit(r.Context(), id, req)
	if err != nil {
		log.Error("failed to update event", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to update event"))
		return
	}

	log.Info("event updated", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"event": event,
	}))
}
