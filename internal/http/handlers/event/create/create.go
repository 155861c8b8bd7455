// Package create реализует HTTP-обработчик создания календарного события
// вместе со списком участников.
//
// Handler принимает JSON-запрос с данными события, валидирует их,
// вызывает бизнес-логику создания и возвращает событие с развернутым
// списком участников.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/sole-app/sole-backend/internal/http/response"
	"github.com/sole-app/sole-backend/internal/lib/sl"
	"github.com/sole-app/sole-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики создания события.
type Service interface {
	Create(ctx context.Context, req models.DummyEvent) (*models.EventWithAttendees, error)
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
// @Summary Создать событие
// @Description Создает событие с участниками. Все участники должны быть существующими пользователями, иначе событие не создается.
// @Tags Events
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyEvent true "Данные нового события"
// @Success 201 {object} response.Response "Созданное событие"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или неизвестный участник"
// @Router /api/events [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
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

	event, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to create event"))
		return
	}

	log.Info("event created", slog.Int("id", event.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"event": event,
	}))
}
