// Package task содержит бизнес-логику жизненного цикла задач:
// создание с валидацией формы, списки с кэшированием,
// завершение и удаление с проверкой прав доступа.
package task

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/taskr/internal/models"
	"github.com/magabrotheeeer/taskr/internal/storage/repository"
)

// DateLayout формат дат в формах и JSON-запросах (месяц/день/год).
const DateLayout = "01/02/2006"

// listCacheKey ключ кэша полного списка задач.
const listCacheKey = "tasks:list"

// Ошибки уровня бизнес-логики.
var (
	// ErrNotFound задача с запрошенным идентификатором отсутствует
	ErrNotFound = errors.New("task not found")
	// ErrForbidden актор не владелец задачи и не администратор
	ErrForbidden = errors.New("forbidden")
)

// FieldErrors содержит сообщения валидации формы по именам полей.
// Реализует error, чтобы обработчик мог вернуть их на повторный рендер формы.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Сообщения валидации, дословно совпадающие с текстами формы.
const (
	msgRequired         = "This field is required."
	msgInvalidDate      = "Not a valid date value."
	msgPositivePriority = "Priority must be a positive number."
)

// Repository определяет методы для работы с задачами в хранилище.
type Repository interface {
	// CreateTask добавляет новую задачу и возвращает её ID.
	CreateTask(ctx context.Context, task models.Task) (int, error)
	// GetTask возвращает задачу по ID.
	GetTask(ctx context.Context, id int) (*models.Task, error)
	// ListTasks возвращает все задачи по возрастанию ID.
	ListTasks(ctx context.Context) ([]*models.Task, error)
	// CompleteTask помечает задачу выполненной.
	CompleteTask(ctx context.Context, id int) (int, error)
	// DeleteTask удаляет задачу.
	DeleteTask(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с задачами, включая кеширование.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// midnightToday возвращает сегодняшнюю календарную дату локального времени
// как полночь UTC, то есть в том же виде, в каком time.Parse разбирает
// даты формата DateLayout.
func midnightToday() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CanModify чистая функция политики доступа: изменять задачу может
// администратор либо её владелец. Один и тот же предикат управляет
// завершением, удалением и видимостью ссылок действий в списке.
func CanModify(actor models.Actor, t *models.Task) bool {
	return actor.Role == models.RoleAdmin || t.OwnerID == actor.ID
}

// Create валидирует черновик задачи и сохраняет её со статусом open.
//
// Владелец фиксируется в момент создания и не меняется.
// Пустая дата публикации означает сегодняшний день.
// При нарушениях валидации возвращает FieldErrors с сообщением на каждое поле.
func (s *Service) Create(ctx context.Context, actor models.Actor, draft models.TaskDraft) (int, error) {
	fieldErrs := FieldErrors{}

	if strings.TrimSpace(draft.Name) == "" {
		fieldErrs["name"] = msgRequired
	}

	var dueDate time.Time
	if strings.TrimSpace(draft.DueDate) == "" {
		fieldErrs["due_date"] = msgRequired
	} else {
		var err error
		dueDate, err = time.Parse(DateLayout, draft.DueDate)
		if err != nil {
			fieldErrs["due_date"] = msgInvalidDate
		}
	}

	var priority int
	if strings.TrimSpace(draft.Priority) == "" {
		fieldErrs["priority"] = msgRequired
	} else {
		var err error
		priority, err = strconv.Atoi(draft.Priority)
		if err != nil || priority <= 0 {
			fieldErrs["priority"] = msgPositivePriority
		}
	}

	postedDate := midnightToday()
	if strings.TrimSpace(draft.PostedDate) != "" {
		var err error
		postedDate, err = time.Parse(DateLayout, draft.PostedDate)
		if err != nil {
			fieldErrs["posted_date"] = msgInvalidDate
		}
	}

	if len(fieldErrs) > 0 {
		return 0, fieldErrs
	}

	entry := models.Task{
		Name:       draft.Name,
		DueDate:    dueDate,
		Priority:   priority,
		PostedDate: postedDate,
		Status:     models.StatusOpen,
		OwnerID:    actor.ID,
		OwnerName:  actor.Name,
	}

	id, err := s.repo.CreateTask(ctx, entry)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new task", slog.Int("id", id), slog.Int("owner", actor.ID))

	s.invalidateList()
	return id, nil
}

// List возвращает все задачи по возрастанию идентификатора.
//
// Видимость задач не ограничена: список общий для всех вошедших
// пользователей, политика доступа ограничивает только действия.
func (s *Service) List(ctx context.Context) ([]*models.Task, error) {
	var cached []*models.Task
	found, err := s.cache.Get(listCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read tasks from cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(listCacheKey, tasks, time.Hour); err != nil {
		s.log.Warn("failed to cache tasks", slog.Any("err", err))
	}
	return tasks, nil
}

// Complete помечает задачу выполненной от имени актора.
//
// Возвращает ErrNotFound для неизвестного ID и ErrForbidden, если политика
// доступа запрещает изменение; состояние задачи при отказе не меняется.
// Повторное завершение уже выполненной задачи считается успешным no-op.
func (s *Service) Complete(ctx context.Context, actor models.Actor, id int) (*models.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModify(actor, t) {
		return nil, ErrForbidden
	}
	if t.Status == models.StatusComplete {
		return t, nil
	}

	if _, err := s.repo.CompleteTask(ctx, id); err != nil {
		return nil, err
	}
	t.Status = models.StatusComplete
	s.log.Info("task marked as complete", slog.Int("id", id), slog.Int("actor", actor.ID))

	s.invalidateList()
	return t, nil
}

// Delete удаляет задачу от имени актора с той же проверкой прав, что и Complete.
func (s *Service) Delete(ctx context.Context, actor models.Actor, id int) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !CanModify(actor, t) {
		return ErrForbidden
	}

	if _, err := s.repo.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.log.Info("task deleted", slog.Int("id", id), slog.Int("actor", actor.ID))

	s.invalidateList()
	return nil
}

// Get возвращает задачу по идентификатору.
func (s *Service) Get(ctx context.Context, id int) (*models.Task, error) {
	return s.load(ctx, id)
}

func (s *Service) load(ctx context.Context, id int) (*models.Task, error) {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) invalidateList() {
	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate tasks cache", slog.String("key", listCacheKey), slog.Any("err", err))
	}
}
