package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Ошибки хранилища, по которым вызывающий код различает исходы операций.
var (
	// ErrUserExists имя или email уже заняты другим пользователем
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound пользователь с таким именем не зарегистрирован
	ErrUserNotFound = errors.New("user not found")
	// ErrTaskNotFound задача с таким идентификатором отсутствует
	ErrTaskNotFound = errors.New("task not found")
)

// isUniqueViolation сообщает, является ли ошибка нарушением
// уникального ограничения PostgreSQL (код 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
