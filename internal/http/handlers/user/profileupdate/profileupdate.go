// Package profileupdate реализует HTTP-обработчик частичного обновления
// профиля текущего пользователя.
//
// Запрос приходит как multipart-форма: текстовые поля профиля и
// необязательный файл изображения. Пустые поля не изменяются.
package profileupdate

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/sole-app/sole-backend/internal/http/middlewarectx"
	"github.com/sole-app/sole-backend/internal/http/response"
	"github.com/sole-app/sole-backend/internal/lib/sl"
	"github.com/sole-app/sole-backend/internal/lib/uploads"
	"github.com/sole-app/sole-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	UpdateProfile(ctx context.Context, userID int, req models.DummyUpdateProfile, image *string) (*models.User, error)
}

// FileStore сохраняет загруженные изображения.
type FileStore interface {
	Save(r io.Reader, originalName string) (string, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	files    FileStore
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером, сервисом и хранилищем файлов.
func New(log *slog.Logger, service Service, files FileStore) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		files:    files,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить профиль
// @Description Частично обновляет профиль текущего пользователя. Принимает multipart-форму с полями профиля и необязательным изображением.
// @Tags Users
// @Accept  mpfd
// @Produce  json
// @Security BearerAuth
// @Param username formData string true "Имя пользователя"
// @Param dob formData string false "Дата рождения в формате 2006-01-02"
// @Param address formData string false "Адрес"
// @Param phone_number formData string false "Номер телефона"
// @Param image formData file false "Изображение профиля"
// @Success 200 {object} response.Response "Обновлённый профиль"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/users/me [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profileupdate"

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

	if err := r.ParseMultipartForm(uploads.MaxImageSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	req := models.DummyUpdateProfile{
		Username:    r.FormValue("username"),
		DOB:         r.FormValue("dob"),
		Address:     r.FormValue("address"),
		PhoneNumber: r.FormValue("phone_number"),
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	var image *string
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		name, err := h.files.Save(file, header.Filename)
		if err != nil {
			log.Error("failed to save image", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("failed to save image"))
			return
		}
		image = &name
	}

	u, err := h.service.UpdateProfile(r.Context(), userID, req, image)
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error("failed to update profile"))
		return
	}

	log.Info("profile updated", slog.Int("id", userID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": u.View(),
	}))
}
