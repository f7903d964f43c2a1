// Package read реализует HTTP-обработчик чтения одной задачи в JSON API.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

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
	Get(ctx context.Context, id int) (*models.Task, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить задачу
// @Description Возвращает задачу по её идентификатору.
// @Tags Tasks
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID задачи"
// @Success 200 {object} map[string]any "Задача"
// @Failure 404 {object} response.ErrorResponse "Задача не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /tasks/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "api.handlers.task.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	t, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, taskservice.ErrNotFound) {
			log.Info("task not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("element does not exist"))
			return
		}
		log.Error("failed to read task", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read task"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"task": map[string]any{
			"id":          t.ID,
			"name":        t.Name,
			"due_date":    t.DueDate.Format(taskservice.DateLayout),
			"priority":    t.Priority,
			"posted_date": t.PostedDate.Format(taskservice.DateLayout),
			"status":      t.Status,
			"owner_id":    t.OwnerID,
			"owner_name":  t.OwnerName,
		},
	}))
}
