// Package crystalplan предоставляет маршруты для основного приложения.
package crystalplan

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	eventcreate "github.com/magabrotheeeer/crystal-plan/internal/http/handlers/event/create"
	"github.com/magabrotheeeer/crystal-plan/internal/http/handlers/event/datelist"
	"github.com/magabrotheeeer/crystal-plan/internal/http/handlers/event/daylist"
	eventlist "github.com/magabrotheeeer/crystal-plan/internal/http/handlers/event/list"
	"github.com/magabrotheeeer/crystal-plan/internal/http/handlers/event/monthlist"
	eventread "github.com/magabrotheeeer/crystal-plan/internal/http/handlers/event/read"
	eventremove "github.com/magabrotheeeer/crystal-plan/internal/http/handlers/event/remove"
	eventupdate "github.com/magabrotheeeer/crystal-plan/internal/http/handlers/event/update"
	"github.com/magabrotheeeer/crystal-plan/internal/http/handlers/event/weeklylist"
	"github.com/magabrotheeeer/crystal-plan/internal/http/handlers/notification/logcreate"
	"github.com/magabrotheeeer/crystal-plan/internal/http/handlers/notification/loglist"
	"github.com/magabrotheeeer/crystal-plan/internal/http/handlers/notification/logread"
	"github.com/magabrotheeeer/crystal-plan/internal/http/handlers/notification/settingsread"
	"github.com/magabrotheeeer/crystal-plan/internal/http/handlers/notification/settingsupdate"
	"github.com/magabrotheeeer/crystal-plan/internal/http/handlers/user/login"
	userread "github.com/magabrotheeeer/crystal-plan/internal/http/handlers/user/read"
	"github.com/magabrotheeeer/crystal-plan/internal/http/handlers/user/register"
	userremove "github.com/magabrotheeeer/crystal-plan/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/crystal-plan/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/crystal-plan/internal/http/middlewarectx"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/jwt"
	eventservice "github.com/magabrotheeeer/crystal-plan/internal/services/event"
	notificationservice "github.com/magabrotheeeer/crystal-plan/internal/services/notification"
	userservice "github.com/magabrotheeeer/crystal-plan/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, eventService *eventservice.EventService, userService *userservice.UserService, notificationService *notificationservice.NotificationService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, userService).ServeHTTP)
		r.Post("/login", login.New(logger, userService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/events", eventcreate.New(logger, eventService).ServeHTTP)
			r.Get("/events/{id}", eventread.New(logger, eventService).ServeHTTP)
			r.Put("/events/{id}", eventupdate.New(logger, eventService).ServeHTTP)
			r.Delete("/events/{id}", eventremove.New(logger, eventService).ServeHTTP)
			r.Get("/events/list", eventlist.New(logger, eventService).ServeHTTP)
			r.Get("/events/weekly", weeklylist.New(logger, eventService).ServeHTTP)
			r.Get("/events/date/{date}", datelist.New(logger, eventService).ServeHTTP)
			r.Get("/events/day/{day}", daylist.New(logger, eventService).ServeHTTP)
			r.Get("/events/month/{year}/{month}", monthlist.New(logger, eventService).ServeHTTP)

			r.Get("/users/me", userread.New(logger, userService).ServeHTTP)
			r.Put("/users/me", userupdate.New(logger, userService).ServeHTTP)
			r.Delete("/users/me", userremove.New(logger, userService).ServeHTTP)

			r.Get("/notifications/settings", settingsread.New(logger, notificationService).ServeHTTP)
			r.Put("/notifications/settings", settingsupdate.New(logger, notificationService).ServeHTTP)
			r.Post("/notifications/logs", logcreate.New(logger, notificationService).ServeHTTP)
			r.Get("/notifications/logs", loglist.New(logger, notificationService).ByUser)
			r.Get("/notifications/logs/{id}", logread.New(logger, notificationService).ServeHTTP)
			r.Get("/notifications/logs/event/{eventId}", loglist.New(logger, notificationService).ByEvent)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
