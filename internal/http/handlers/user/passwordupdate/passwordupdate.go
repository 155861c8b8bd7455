// Package passwordupdate реализует HTTP-обработчик смены пароля
// авторизованного пользователя.
package passwordupdate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/sole-app/sole-backend/internal/http/middlewarectx"
	"github.com/sole-app/sole-backend/internal/http/response"
	"github.com/sole-app/sole-backend/internal/lib/sl"
	"github.com/sole-app/sole-backend/internal/services/user"
)

// Request — входные данные для смены пароля.
type Request struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики смены пароля.
type Service interface {
	UpdatePassword(ctx context.Context, userID int, oldPassword, newPassword string) error
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
// @Summary Сменить пароль
// @Description Меняет пароль текущего пользователя после проверки старого.
// @Tags Users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Старый и новый пароли"
// @Success 200 {object} response.Response "Пароль обновлён"
// @Failure 401 {object} response.ErrorResponse "Неверный старый пароль"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/users/me/password [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.passwordupdate"

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

	if err := h.service.UpdatePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			log.Info("password change rejected", slog.Int("id", userID))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid old password"))
			return
		}
		log.Error("failed to update password", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to update password"))
		return
	}

	log.Info("password updated", slog.Int("id", userID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "password updated successfully",
	}))
}
