// Package list реализует HTTP-обработчик списка задач в JSON API.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/taskr/internal/api/response"
	"github.com/magabrotheeeer/taskr/internal/lib/sl"
	"github.com/magabrotheeeer/taskr/internal/models"
	taskservice "github.com/magabrotheeeer/taskr/internal/services/task"
)

// Item представление задачи в JSON-ответе.
type Item struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	DueDate    string        `json:"due_date"`
	Priority   int           `json:"priority"`
	PostedDate string        `json:"posted_date"`
	Status     models.Status `json:"status"`
	OwnerID    int           `json:"owner_id"`
	OwnerName  string        `json:"owner_name"`
}

// NewItem конвертирует доменную задачу в представление JSON API.
func NewItem(t *models.Task) Item {
	return Item{
		ID:         t.ID,
		Name:       t.Name,
		DueDate:    t.DueDate.Format(taskservice.DateLayout),
		Priority:   t.Priority,
		PostedDate: t.PostedDate.Format(taskservice.DateLayout),
		Status:     t.Status,
		OwnerID:    t.OwnerID,
		OwnerName:  t.OwnerName,
	}
}

// Handler обрабатывает запросы списка задач.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка задач.
type Service interface {
	List(ctx context.Context) ([]*models.Task, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список задач
// @Description Возвращает все задачи, открытые и выполненные, по возрастанию ID.
// @Tags Tasks
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список задач"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /tasks [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "api.handlers.task.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tasks, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list tasks", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list tasks"))
		return
	}

	items := make([]Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, NewItem(t))
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"tasks": items,
	}))
}
