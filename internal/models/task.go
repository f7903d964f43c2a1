// Package models содержит доменные структуры задачи,
// а также вспомогательные типы для приёма данных из форм и JSON-запросов.
package models

import "time"

// Status закрытое перечисление состояний задачи.
// Допустим единственный переход: open -> complete.
type Status string

const (
	// StatusOpen задача открыта
	StatusOpen Status = "open"
	// StatusComplete задача выполнена
	StatusComplete Status = "complete"
)

// Task представляет собой основную модель задачи,
// используемую в бизнес-логике и хранилище.
// Идентификатор назначается базой данных монотонно.
type Task struct {
	ID         int       // Уникальный идентификатор задачи
	Name       string    // Название задачи (непустое)
	DueDate    time.Time // Срок выполнения
	Priority   int       // Приоритет, небольшое положительное число
	PostedDate time.Time // Дата публикации, по умолчанию день создания
	Status     Status    // Состояние задачи, open или complete
	OwnerID    int       // Идентификатор пользователя-владельца
	OwnerName  string    // Имя владельца для отображения в списке
}

// Open сообщает, открыта ли ещё задача.
func (t *Task) Open() bool {
	return t.Status == StatusOpen
}

// TaskDraft используется для приёма данных из HTML-формы,
// прежде чем конвертировать их в Task.
// Даты приходят в виде строк формата 01/02/2006, чтобы их можно
// было валидировать и парсить вручную.
type TaskDraft struct {
	Name       string // Название задачи
	DueDate    string // Срок выполнения в формате 01/02/2006
	Priority   string // Приоритет (>0)
	PostedDate string // Дата публикации, пустая строка означает сегодня
}
