// Package session реализует cookie-сессии HTML-интерфейса поверх gorilla/sessions.
//
// Сессия хранит личность вошедшего пользователя и одноразовые flash-сообщения,
// отображаемые на следующей отрисованной странице.
package session

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/magabrotheeeer/taskr/internal/lib/sl"
	"github.com/magabrotheeeer/taskr/internal/models"
)

const sessionName = "taskr_session"

// Ключи значений сессии. Значения — примитивные типы,
// чтобы не регистрировать доменные типы в gob.
const (
	keyUserID   = "user_id"
	keyUserName = "user_name"
	keyUserRole = "user_role"
)

// Store обёртка над cookie-хранилищем с удобными методами для обработчиков.
type Store struct {
	store *sessions.CookieStore
	log   *slog.Logger
}

// NewStore создает cookie-хранилище, подписанное секретным ключом из конфига.
func NewStore(secretKey string, log *slog.Logger) *Store {
	cs := sessions.NewCookieStore([]byte(secretKey))
	cs.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: cs, log: log}
}

// SignIn привязывает сессию к пользователю после успешной проверки пароля.
func (s *Store) SignIn(w http.ResponseWriter, r *http.Request, user *models.User) error {
	sess, _ := s.store.Get(r, sessionName)
	sess.Values[keyUserID] = user.ID
	sess.Values[keyUserName] = user.Name
	sess.Values[keyUserRole] = string(user.Role)
	return sess.Save(r, w)
}

// SignOut удаляет личность из сессии.
//
// Сама сессия сохраняется: flash-сообщение о выходе должно
// пережить редирект на страницу входа.
func (s *Store) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, sessionName)
	delete(sess.Values, keyUserID)
	delete(sess.Values, keyUserName)
	delete(sess.Values, keyUserRole)
	return sess.Save(r, w)
}

// Actor возвращает актора текущего запроса.
// false означает анонимный запрос.
func (s *Store) Actor(r *http.Request) (models.Actor, bool) {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		return models.Actor{}, false
	}
	id, ok := sess.Values[keyUserID].(int)
	if !ok {
		return models.Actor{}, false
	}
	name, _ := sess.Values[keyUserName].(string)
	roleStr, _ := sess.Values[keyUserRole].(string)
	role := models.Role(roleStr)
	if !role.Valid() {
		role = models.RoleUser
	}
	return models.Actor{ID: id, Name: name, Role: role}, true
}

// Flash добавляет одноразовое сообщение, которое покажет следующая страница.
func (s *Store) Flash(w http.ResponseWriter, r *http.Request, msg string) {
	sess, _ := s.store.Get(r, sessionName)
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		s.log.Error("failed to save session flash", sl.Err(err))
	}
}

// Flashes забирает накопленные сообщения, очищая их в сессии.
func (s *Store) Flashes(w http.ResponseWriter, r *http.Request) []string {
	sess, _ := s.store.Get(r, sessionName)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		s.log.Error("failed to save session after reading flashes", sl.Err(err))
	}
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
