// Package complete реализует HTTP-обработчик завершения задачи в JSON API.
package complete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/taskr/internal/api/middlewarectx"
	"github.com/magabrotheeeer/taskr/internal/api/response"
	"github.com/magabrotheeeer/taskr/internal/lib/sl"
	"github.com/magabrotheeeer/taskr/internal/models"
	taskservice "github.com/magabrotheeeer/taskr/internal/services/task"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Complete(ctx context.Context, actor models.Actor, id int) (*models.Task, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Завершить задачу
// @Description Помечает задачу выполненной. Доступно владельцу и администратору.
// @Tags Tasks
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID задачи"
// @Success 200 {object} map[string]any "Задача завершена"
// @Failure 403 {object} response.ErrorResponse "Нет прав на изменение"
// @Failure 404 {object} response.ErrorResponse "Задача не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /tasks/{id}/complete [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "api.handlers.task.complete"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("actor not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	t, err := h.service.Complete(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, taskservice.ErrNotFound):
			log.Info("task not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("element does not exist"))
		case errors.Is(err, taskservice.ErrForbidden):
			log.Info("complete denied", slog.Int("id", id), slog.Int("actor", actor.ID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("you can only update tasks that belong to you"))
		default:
			log.Error("failed to complete task", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not complete task"))
		}
		return
	}

	log.Info("task completed", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":     t.ID,
		"status": t.Status,
	}))
}
