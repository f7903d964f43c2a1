// Package middlewarectx содержит HTTP middleware HTML-интерфейса:
// проверку сессии, ограничение частоты запросов и перехват паник.
//
// RequireLogin проверяет наличие вошедшего пользователя в cookie-сессии
// и кладёт актора в контекст запроса для дальнейшего использования
// в обработчиках. Анонимный запрос до бизнес-логики не доходит.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/taskr/internal/http/session"
	"github.com/magabrotheeeer/taskr/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// ActorKey ключ актора текущего запроса в контексте.
const ActorKey Key = "actor"

// ActorFromContext возвращает актора, положенного RequireLogin.
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(models.Actor)
	return actor, ok
}

// RequireLogin возвращает middleware, который пускает дальше только
// запросы с установленной сессией пользователя.
//
// Анонима отправляет на страницу входа с flash-сообщением.
func RequireLogin(store *session.Store, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := store.Actor(r)
			if !ok {
				log.Info("anonymous request rejected", slog.String("path", r.URL.Path))
				store.Flash(w, r, "You need to log in first.")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			ctx := context.WithValue(r.Context(), ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
