// Package sl добавляет небольшие утилиты поверх стандартного slog,
// чтобы обработчики и сервисы логировали ошибки одинаковыми полями.
package sl

import "log/slog"

// Err оборачивает ошибку в атрибут лога с ключом "error".
// Все записи об ошибках в приложении используют именно этот атрибут,
// поэтому по ключу "error" их легко фильтровать.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
