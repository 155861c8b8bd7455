// Package resetpassword реализует HTTP-обработчик установки нового
// пароля по токену из письма.
package resetpassword

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

// Request — входные данные для установки нового пароля.
type Request struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики установки пароля.
type Service interface {
	ResetPassword(ctx context.Context, token, newPassword string) error
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
// @Summary Установить новый пароль
// @Description Устанавливает новый пароль по токену из письма сброса.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Токен и новый пароль"
// @Success 200 {object} response.Response "Пароль обновлён"
// @Failure 422 {object} response.ErrorResponse "Токен некорректен или просрочен"
// @Router /api/users/reset-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetpassword"

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

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		log.Error("failed to reset password", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to reset password"))
		return
	}

	log.Info("password reset")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "password updated successfully",
	}))
}
