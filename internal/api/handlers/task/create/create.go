// Package create реализует HTTP-обработчик создания задачи в JSON API.
//
// Handler принимает JSON-запрос с данными задачи, валидирует их, извлекает
// актора из контекста, вызывает бизнес-логику создания и возвращает ID
// созданной записи в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/taskr/internal/api/middlewarectx"
	"github.com/magabrotheeeer/taskr/internal/api/response"
	"github.com/magabrotheeeer/taskr/internal/lib/sl"
	"github.com/magabrotheeeer/taskr/internal/models"
	taskservice "github.com/magabrotheeeer/taskr/internal/services/task"
)

// Request — структура входных данных для создания задачи.
// Даты приходят строками в формате 01/02/2006 и разбираются бизнес-логикой,
// пустая дата публикации означает сегодняшний день.
type Request struct {
	Name       string `json:"name" validate:"required"`
	DueDate    string `json:"due_date" validate:"required"`
	Priority   string `json:"priority" validate:"required"`
	PostedDate string `json:"posted_date"`
}

// Handler управляет HTTP-запросами на создание задач.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики задач
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания задачи.
type Service interface {
	Create(ctx context.Context, actor models.Actor, draft models.TaskDraft) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новую задачу
// @Description Создает новую задачу для текущего пользователя. Возвращает ID созданной записи.
// @Tags Tasks
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные новой задачи"
// @Success 200 {object} map[string]any "Успешное создание задачи"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании задачи"
// @Router /tasks [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "api.handlers.task.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	actor, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("actor not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	draft := models.TaskDraft{
		Name:       req.Name,
		DueDate:    req.DueDate,
		Priority:   req.Priority,
		PostedDate: req.PostedDate,
	}
	id, err := h.service.Create(r.Context(), actor, draft)
	if err != nil {
		var fieldErrs taskservice.FieldErrors
		if errors.As(err, &fieldErrs) {
			log.Error("draft rejected", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(fieldErrs.Error()))
			return
		}
		log.Error("failed to create task", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create task"))
		return
	}

	log.Info("task created", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"last_added_id": id,
	}))
}
