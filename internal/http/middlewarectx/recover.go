package middlewarectx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// ErrorPage отрисовывает общую страницу внутренней ошибки.
type ErrorPage interface {
	ServerError(w http.ResponseWriter)
}

// Recover перехватывает панику обработчика и отвечает общей страницей 500.
//
// Текст паники и стек попадают только в лог, в тело ответа — никогда.
func Recover(view ErrorPage, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered",
						slog.Any("panic", rec),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())))
					view.ServerError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
