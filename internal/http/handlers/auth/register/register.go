// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Handler принимает JSON-запрос с данными учётной записи, валидирует их,
// вызывает бизнес-логику регистрации и возвращает ID созданного пользователя.
// Сбой отправки письма с подтверждением не отменяет регистрацию.
package register

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

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, req models.DummyRegisterUser) (int, bool, error)
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
// @Summary Зарегистрировать пользователя
// @Description Создает учётную запись с пробным периодом на неделю и отправляет письмо с подтверждением почты.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.DummyRegisterUser true "Данные регистрации"
// @Success 201 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Почта уже занята"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/users/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRegisterUser
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

	id, emailSent, err := h.service.Register(r.Context(), req)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.Int("id", id), slog.Bool("email_sent", emailSent))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":                      id,
		"verification_email_sent": emailSent,
	}))
}
