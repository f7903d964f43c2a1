// Package view отрисовывает HTML-страницы приложения из встроенных шаблонов.
package view

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/magabrotheeeer/taskr/internal/lib/sl"
	"github.com/magabrotheeeer/taskr/internal/models"
	"github.com/magabrotheeeer/taskr/internal/services/task"
)

//go:embed templates/*.html
var templatesFS embed.FS

// View хранит разобранный набор шаблонов.
type View struct {
	tmpl *template.Template
	log  *slog.Logger
}

// New разбирает встроенные шаблоны.
func New(log *slog.Logger) (*View, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &View{tmpl: tmpl, log: log}, nil
}

// Page данные для отрисовки страницы.
type Page struct {
	Flashes     []string          // Одноразовые сообщения из сессии
	Username    string            // Имя вошедшего пользователя, пустое для анонима
	FieldErrors map[string]string // Сообщения валидации формы по полям
	Form        map[string]string // Введённые значения для повторного рендера формы
	OpenTasks   []TaskRow
	ClosedTasks []TaskRow
}

// TaskRow строка списка задач вместе с решением политики доступа:
// ссылки действий отрисовываются только там, где CanModify истинно.
type TaskRow struct {
	ID         int
	Name       string
	DueDate    string
	Priority   int
	PostedDate string
	OwnerName  string
	CanModify  bool
}

// NewTaskRow формирует строку списка для конкретного актора.
func NewTaskRow(actor models.Actor, t *models.Task) TaskRow {
	return TaskRow{
		ID:         t.ID,
		Name:       t.Name,
		DueDate:    t.DueDate.Format(task.DateLayout),
		Priority:   t.Priority,
		PostedDate: t.PostedDate.Format(task.DateLayout),
		OwnerName:  t.OwnerName,
		CanModify:  task.CanModify(actor, t),
	}
}

// SplitTasks раскладывает задачи по статусу в строки страницы.
func SplitTasks(actor models.Actor, tasks []*models.Task) (open, closed []TaskRow) {
	for _, t := range tasks {
		row := NewTaskRow(actor, t)
		if t.Open() {
			open = append(open, row)
		} else {
			closed = append(closed, row)
		}
	}
	return open, closed
}

// Render отрисовывает именованный шаблон с данными страницы.
func (v *View) Render(w http.ResponseWriter, status int, name string, page Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := v.tmpl.ExecuteTemplate(w, name, page); err != nil {
		v.log.Error("failed to render template", slog.String("template", name), sl.Err(err))
	}
}

// NotFound отрисовывает страницу 404.
func (v *View) NotFound(w http.ResponseWriter) {
	v.Render(w, http.StatusNotFound, "notfound.html", Page{})
}

// ServerError отрисовывает общую страницу 500.
// Детали внутренней ошибки на страницу никогда не попадают.
func (v *View) ServerError(w http.ResponseWriter) {
	v.Render(w, http.StatusInternalServerError, "error.html", Page{})
}

// Today возвращает сегодняшнюю дату в формате форм.
func Today() string {
	return time.Now().Format(task.DateLayout)
}
