// Package verifyemail реализует HTTP-обработчик подтверждения почты
// по одноразовой ссылке из письма.
package verifyemail

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/sole-app/sole-backend/internal/http/response"
	"github.com/sole-app/sole-backend/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики подтверждения почты.
type Service interface {
	VerifyEmail(ctx context.Context, token string) error
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
// @Summary Подтвердить почту
// @Description Подтверждает адрес почты по токену из письма. Повторное подтверждение отклоняется.
// @Tags Auth
// @Produce  json
// @Param token query string true "Токен подтверждения"
// @Success 200 {object} response.Response "Почта подтверждена"
// @Failure 409 {object} response.ErrorResponse "Почта уже подтверждена"
// @Failure 422 {object} response.ErrorResponse "Токен некорректен или просрочен"
// @Router /api/users/verify-email [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.verifyemail"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := r.URL.Query().Get("token")
	if token == "" {
		log.Error("missing token query parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing token"))
		return
	}

	if err := h.service.VerifyEmail(r.Context(), token); err != nil {
		log.Error("email verification failed", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to verify email"))
		return
	}

	log.Info("email verified")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "email verified successfully",
	}))
}
