// Package complete реализует HTTP-обработчик завершения задачи.
package complete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/taskr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/taskr/internal/http/session"
	"github.com/magabrotheeeer/taskr/internal/http/view"
	"github.com/magabrotheeeer/taskr/internal/lib/sl"
	"github.com/magabrotheeeer/taskr/internal/models"
	taskservice "github.com/magabrotheeeer/taskr/internal/services/task"
)

type Handler struct {
	log     *slog.Logger
	service Service
	store   *session.Store
	view    *view.View
}

type Service interface {
	Complete(ctx context.Context, actor models.Actor, id int) (*models.Task, error)
}

func New(log *slog.Logger, service Service, store *session.Store, v *view.View) *Handler {
	return &Handler{
		log:     log,
		service: service,
		store:   store,
		view:    v,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.complete"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("actor not found in context")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		h.view.NotFound(w)
		return
	}

	if _, err := h.service.Complete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, taskservice.ErrNotFound):
			log.Info("task not found", slog.Int("id", id))
			h.view.NotFound(w)
		case errors.Is(err, taskservice.ErrForbidden):
			log.Info("complete denied", slog.Int("id", id), slog.Int("actor", actor.ID))
			h.store.Flash(w, r, "You can only update tasks that belong to you.")
			http.Redirect(w, r, "/tasks/", http.StatusSeeOther)
		default:
			log.Error("failed to complete task", sl.Err(err))
			h.view.ServerError(w)
		}
		return
	}

	log.Info("task completed", slog.Int("id", id))
	h.store.Flash(w, r, "The task was marked as complete.")
	http.Redirect(w, r, "/tasks/", http.StatusSeeOther)
}
