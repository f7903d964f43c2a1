// Package list отрисовывает страницу списка задач.
//
// Все вошедшие пользователи видят все задачи, открытые и выполненные.
// Политика доступа ограничивает только ссылки действий: они отрисовываются
// лишь для задач, которые актор вправе изменять.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/taskr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/taskr/internal/http/session"
	"github.com/magabrotheeeer/taskr/internal/http/view"
	"github.com/magabrotheeeer/taskr/internal/lib/sl"
	"github.com/magabrotheeeer/taskr/internal/models"
)

// Handler обрабатывает запросы страницы задач.
type Handler struct {
	log     *slog.Logger   // Логгер для записи операций и ошибок
	service Service        // Сервис бизнес-логики задач
	store   *session.Store // Cookie-сессии
	view    *view.View     // Отрисовка страниц
}

// Service описывает интерфейс бизнес-логики списка задач.
type Service interface {
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
	const op = "handlers.task.list"
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

	tasks, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list tasks", sl.Err(err))
		h.view.ServerError(w)
		return
	}
	open, closed := view.SplitTasks(actor, tasks)

	h.view.Render(w, http.StatusOK, "tasks.html", view.Page{
		Flashes:     h.store.Flashes(w, r),
		Username:    actor.Name,
		Form:        map[string]string{"posted_date": view.Today()},
		OpenTasks:   open,
		ClosedTasks: closed,
	})
}
