// Package taskr предоставляет маршруты для основного приложения.
package taskr

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	apilogin "github.com/magabrotheeeer/taskr/internal/api/handlers/auth/login"
	apicomplete "github.com/magabrotheeeer/taskr/internal/api/handlers/task/complete"
	apicreate "github.com/magabrotheeeer/taskr/internal/api/handlers/task/create"
	apilist "github.com/magabrotheeeer/taskr/internal/api/handlers/task/list"
	apiread "github.com/magabrotheeeer/taskr/internal/api/handlers/task/read"
	apiremove "github.com/magabrotheeeer/taskr/internal/api/handlers/task/remove"
	apimiddleware "github.com/magabrotheeeer/taskr/internal/api/middlewarectx"
	"github.com/magabrotheeeer/taskr/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/taskr/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/taskr/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/taskr/internal/http/handlers/task/add"
	"github.com/magabrotheeeer/taskr/internal/http/handlers/task/complete"
	"github.com/magabrotheeeer/taskr/internal/http/handlers/task/list"
	"github.com/magabrotheeeer/taskr/internal/http/handlers/task/remove"
	"github.com/magabrotheeeer/taskr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/taskr/internal/http/session"
	"github.com/magabrotheeeer/taskr/internal/http/view"
	"github.com/magabrotheeeer/taskr/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/taskr/internal/services/auth"
	taskservice "github.com/magabrotheeeer/taskr/internal/services/task"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	auth *authservice.Service, tasks *taskservice.Service,
	store *session.Store, v *view.View, jwtMaker jwt.Maker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.URLFormat,
		middlewarectx.Recover(v, logger),
	)

	loginHandler := login.New(logger, auth, store, v)
	registerHandler := register.New(logger, auth, store, v)

	// Открытые страницы входа и регистрации, с ограничением частоты
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, rate.NewLimiter(5, 10)))
		r.Get("/", loginHandler.Show)
		r.Post("/", loginHandler.ServeHTTP)
		r.Get("/register/", registerHandler.Show)
		r.Post("/register/", registerHandler.ServeHTTP)
	})

	// Страницы, требующие установленной сессии
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireLogin(store, logger))
		r.Get("/logout/", logout.New(logger, store).ServeHTTP)
		r.Get("/tasks/", list.New(logger, tasks, store, v).ServeHTTP)
		r.Post("/add/", add.New(logger, tasks, store, v).ServeHTTP)
		r.Get("/complete/{id}/", complete.New(logger, tasks, store, v).ServeHTTP)
		r.Get("/delete/{id}/", remove.New(logger, tasks, store, v).ServeHTTP)
	})

	// JSON API с JWT аутентификацией
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", apilogin.New(logger, auth).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.JWTMiddleware(jwtMaker, logger))
			r.Get("/tasks", apilist.New(logger, tasks).ServeHTTP)
			r.Post("/tasks", apicreate.New(logger, tasks).ServeHTTP)
			r.Get("/tasks/{id}", apiread.New(logger, tasks).ServeHTTP)
			r.Put("/tasks/{id}/complete", apicomplete.New(logger, tasks).ServeHTTP)
			r.Delete("/tasks/{id}", apiremove.New(logger, tasks).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Неизвестный маршрут отвечает страницей 404
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		v.NotFound(w)
	})
}
