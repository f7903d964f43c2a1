// Package models содержит доменную модель пользователя системы,
// включающую учётные данные, хэш пароля и роль.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

// Role закрытое перечисление ролей пользователя.
// Сравнение ролей выполняется по типизированным константам,
// а не по произвольным строкам.
type Role string

const (
	// RoleUser обычный пользователь, роль по умолчанию при регистрации
	RoleUser Role = "user"
	// RoleAdmin администратор, может изменять любые задачи
	RoleAdmin Role = "admin"
)

// Valid сообщает, является ли значение одной из известных ролей.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int    // Уникальный идентификатор пользователя
	Name         string // Имя пользователя (уникальное, используется для входа)
	Email        string // Электронная почта (уникальная)
	PasswordHash string // Хэш пароля, пароль в открытом виде не хранится
	Role         Role   // Роль пользователя, admin или user
}

// Actor описывает аутентифицированную личность текущего запроса.
// Формируется из сессии либо из claims JWT и передаётся явно
// в вызовы бизнес-логики вместо чтения глобального состояния.
type Actor struct {
	ID   int
	Name string
	Role Role
}

// IsAdmin сообщает, обладает ли актор правом администратора.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
