// Package add реализует HTTP-обработчик создания новой задачи из формы.
//
// При нарушениях валидации страница задач отрисовывается повторно
// с сообщениями около полей; запись при этом не создаётся.
package add

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/taskr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/taskr/internal/http/session"
	"github.com/magabrotheeeer/taskr/internal/http/view"
	"github.com/magabrotheeeer/taskr/internal/lib/sl"
	"github.com/magabrotheeeer/taskr/internal/models"
	taskservice "github.com/magabrotheeeer/taskr/internal/services/task"
)

// Handler обрабатывает создание задач.
type Handler struct {
	log     *slog.Logger
	service Service
	store   *session.Store
	view    *view.View
}

// Service описывает интерфейс бизнес-логики создания задачи.
type Service interface {
	Create(ctx context.Context, actor models.Actor, draft models.TaskDraft) (int, error)
	List(ctx context.Context) ([]*models.Task, error)
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.add"
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

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.view.ServerError(w)
		return
	}
	draft := models.TaskDraft{
		Name:       r.PostFormValue("name"),
		DueDate:    r.PostFormValue("due_date"),
		Priority:   r.PostFormValue("priority"),
		PostedDate: r.PostFormValue("posted_date"),
	}

	id, err := h.service.Create(r.Context(), actor, draft)
	if err != nil {
		var fieldErrs taskservice.FieldErrors
		if errors.As(err, &fieldErrs) {
			log.Info("task form rejected", slog.Int("field_errors", len(fieldErrs)))
			h.renderFormErrors(w, r, actor, draft, fieldErrs)
			return
		}
		log.Error("failed to create task", sl.Err(err))
		h.view.ServerError(w)
		return
	}

	log.Info("task created", slog.Int("id", id))
	h.store.Flash(w, r, "New entry was successfully posted.")
	http.Redirect(w, r, "/tasks/", http.StatusSeeOther)
}

// renderFormErrors повторно отрисовывает страницу задач с сообщениями
// валидации и введёнными значениями формы.
func (h *Handler) renderFormErrors(w http.ResponseWriter, r *http.Request,
	actor models.Actor, draft models.TaskDraft, fieldErrs taskservice.FieldErrors) {
	tasks, err := h.service.List(r.Context())
	if err != nil {
		h.log.Error("failed to list tasks for form re-render", sl.Err(err))
		h.view.ServerError(w)
		return
	}
	open, closed := view.SplitTasks(actor, tasks)

	h.view.Render(w, http.StatusOK, "tasks.html", view.Page{
		Flashes:     h.store.Flashes(w, r),
		Username:    actor.Name,
		FieldErrors: fieldErrs,
		Form: map[string]string{
			"name":        draft.Name,
			"due_date":    draft.DueDate,
			"priority":    draft.Priority,
			"posted_date": draft.PostedDate,
		},
		OpenTasks:   open,
		ClosedTasks: closed,
	})
}
