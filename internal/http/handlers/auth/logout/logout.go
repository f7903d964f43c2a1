// Package logout завершает сессию пользователя.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/taskr/internal/http/session"
	"github.com/magabrotheeeer/taskr/internal/lib/sl"
)

type Handler struct {
	log   *slog.Logger
	store *session.Store
}

func New(log *slog.Logger, store *session.Store) *Handler {
	return &Handler{
		log:   log,
		store: store,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.store.SignOut(w, r); err != nil {
		log.Error("failed to clear session", sl.Err(err))
	}
	log.Info("user logged out")
	h.store.Flash(w, r, "Goodbye.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
