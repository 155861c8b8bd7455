// Package forgotpassword реализует HTTP-обработчик запроса на сброс
// пароля: пользователю отправляется письмо со ссылкой.
package forgotpassword

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
)

// Request — входные данные запроса сброса пароля.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики сброса пароля.
type Service interface {
	ForgotPassword(ctx context.Context, email string) error
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
// @Summary Запросить сброс пароля
// @Description Отправляет на указанную почту письмо со ссылкой для сброса пароля.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Почта пользователя"
// @Success 200 {object} response.Response "Письмо отправлено"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 502 {object} response.ErrorResponse "Почтовый сервер недоступен"
// @Router /api/users/forgot-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgotpassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		log.Error("failed to send reset email", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to send reset email"))
		return
	}

	log.Info("reset email sent")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "password reset email sent",
	}))
}
