// Package login реализует HTTP-обработчики страницы входа.
//
// Show отрисовывает форму, ServeHTTP проверяет учётные данные и
// устанавливает сессию. Любая причина отказа показывается одним и тем же
// сообщением, чтобы по ответу нельзя было определить существование пользователя.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/taskr/internal/http/session"
	"github.com/magabrotheeeer/taskr/internal/http/view"
	"github.com/magabrotheeeer/taskr/internal/lib/sl"
	"github.com/magabrotheeeer/taskr/internal/models"
	authservice "github.com/magabrotheeeer/taskr/internal/services/auth"
)

// Handler обрабатывает запросы страницы входа.
type Handler struct {
	log     *slog.Logger   // Логгер для записи операций и ошибок
	service Service        // Сервис бизнес-логики аутентификации
	store   *session.Store // Cookie-сессии
	view    *view.View     // Отрисовка страниц
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, name, rawPassword string) (*models.User, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, store *session.Store, v *view.View) *Handler {
	return &Handler{
		log:     log,
		service: service,
		store:   store,
		view:    v,
	}
}

// Show отрисовывает форму входа вместе с накопленными flash-сообщениями.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, http.StatusOK, "login.html", view.Page{
		Flashes: h.store.Flashes(w, r),
		Form:    map[string]string{"name": ""},
	})
}

// ServeHTTP обрабатывает отправку формы входа.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.view.ServerError(w)
		return
	}
	name := r.PostFormValue("name")
	pass := r.PostFormValue("password")

	user, err := h.service.Login(r.Context(), name, pass)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			log.Info("login rejected", slog.String("name", name))
			h.view.Render(w, http.StatusOK, "login.html", view.Page{
				Flashes: append(h.store.Flashes(w, r), "Invalid username or password."),
				Form:    map[string]string{"name": name},
			})
			return
		}
		log.Error("login failed", sl.Err(err))
		h.view.ServerError(w)
		return
	}

	if err := h.store.SignIn(w, r, user); err != nil {
		log.Error("failed to establish session", sl.Err(err))
		h.view.ServerError(w)
		return
	}
	log.Info("login success", slog.String("name", user.Name))
	h.store.Flash(w, r, "Welcome!")
	http.Redirect(w, r, "/tasks/", http.StatusSeeOther)
}
