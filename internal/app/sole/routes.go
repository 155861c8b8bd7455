// Package sole предоставляет маршруты для основного приложения.
package sole

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sole-app/sole-backend/internal/http/handlers/auth/forgotpassword"
	"github.com/sole-app/sole-backend/internal/http/handlers/auth/login"
	"github.com/sole-app/sole-backend/internal/http/handlers/auth/register"
	"github.com/sole-app/sole-backend/internal/http/handlers/auth/resetpassword"
	"github.com/sole-app/sole-backend/internal/http/handlers/auth/verifyemail"
	eventcreate "github.com/sole-app/sole-backend/internal/http/handlers/event/create"
	eventlist "github.com/sole-app/sole-backend/internal/http/handlers/event/list"
	"github.com/sole-app/sole-backend/internal/http/handlers/event/listuser"
	eventupdate "github.com/sole-app/sole-backend/internal/http/handlers/event/update"
	"github.com/sole-app/sole-backend/internal/http/handlers/health"
	locationlist "github.com/sole-app/sole-backend/internal/http/handlers/location/list"
	"github.com/sole-app/sole-backend/internal/http/handlers/subscription/cancel"
	"github.com/sole-app/sole-backend/internal/http/handlers/subscription/checkoutsession"
	"github.com/sole-app/sole-backend/internal/http/handlers/subscription/upgrade"
	userlist "github.com/sole-app/sole-backend/internal/http/handlers/user/list"
	"github.com/sole-app/sole-backend/internal/http/handlers/user/passwordupdate"
	"github.com/sole-app/sole-backend/internal/http/handlers/user/profile"
	"github.com/sole-app/sole-backend/internal/http/handlers/user/profileupdate"
	"github.com/sole-app/sole-backend/internal/http/middlewarectx"
	"github.com/sole-app/sole-backend/internal/lib/jwt"
	"github.com/sole-app/sole-backend/internal/lib/uploads"
	checkoutservice "github.com/sole-app/sole-backend/internal/services/checkout"
	eventservice "github.com/sole-app/sole-backend/internal/services/event"
	userservice "github.com/sole-app/sole-backend/internal/services/user"
	"github.com/sole-app/sole-backend/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	jwtMaker jwt.Maker,
	userService *userservice.Service,
	eventService *eventservice.Service,
	checkoutService *checkoutservice.Service,
	files *uploads.Store,
	db *repository.Storage,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limiter := rate.NewLimiter(rate.Limit(5), 10)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/users/register", register.New(logger, userService).ServeHTTP)
		r.Post("/users/login", login.New(logger, userService).ServeHTTP)
		r.Get("/users/verify-email", verifyemail.New(logger, userService).ServeHTTP)
		r.Post("/users/forgot-password", forgotpassword.New(logger, userService).ServeHTTP)
		r.Post("/users/reset-password", resetpassword.New(logger, userService).ServeHTTP)
		r.Get("/locations", locationlist.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))
			r.Get("/users/me", profile.New(logger, userService).ServeHTTP)
			r.Put("/users/me", profileupdate.New(logger, userService, files).ServeHTTP)
			r.Put("/users/me/password", passwordupdate.New(logger, userService).ServeHTTP)
			r.Get("/users", userlist.New(logger, userService).ServeHTTP)
			r.Post("/subscriptions/upgrade", upgrade.New(logger, userService).ServeHTTP)
			r.Post("/subscriptions/cancel", cancel.New(logger, userService).ServeHTTP)
			r.Post("/subscriptions/checkout-session", checkoutsession.New(logger, checkoutService, userService).ServeHTTP)
			r.Post("/events", eventcreate.New(logger, eventService).ServeHTTP)
			r.Get("/events", eventlist.New(logger, eventService).ServeHTTP)
			r.Put("/events/{id}", eventupdate.New(logger, eventService).ServeHTTP)
			r.Get("/events/my", listuser.New(logger, eventService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)

	// Загруженные изображения профилей
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(files.Dir())))
	r.Handle("/uploads/*", fileServer)

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
