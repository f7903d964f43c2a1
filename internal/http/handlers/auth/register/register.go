package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/taskr/internal/http/session"
	"github.com/magabrotheeeer/taskr/internal/http/view"
	"github.com/magabrotheeeer/taskr/internal/lib/sl"
	authservice "github.com/magabrotheeeer/taskr/internal/services/auth"
)

type Handler struct {
	log     *slog.Logger
	service Service
	store   *session.Store
	view    *view.View
}

type Service interface {
	Register(ctx context.Context, name, email, rawPassword string) (int, error)
}

func New(log *slog.Logger, service Service, store *session.Store, v *view.View) *Handler {
	return &Handler{
		log:     log,
		service: service,
		store:   store,
		view:    v,
	}
}

// Show отрисовывает форму регистрации.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, http.StatusOK, "register.html", view.Page{
		Flashes: h.store.Flashes(w, r),
		Form:    map[string]string{"name": "", "email": ""},
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		h.view.ServerError(w)
		return
	}
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	pass := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm")

	fieldErrs := map[string]string{}
	for field, val := range map[string]string{
		"name": name, "email": email, "password": pass, "confirm": confirm,
	} {
		if strings.TrimSpace(val) == "" {
			fieldErrs[field] = "This field is required."
		}
	}
	if fieldErrs["confirm"] == "" && confirm != pass {
		fieldErrs["confirm"] = "Field must be equal to password."
	}
	if len(fieldErrs) > 0 {
		log.Info("registration form rejected", slog.Int("field_errors", len(fieldErrs)))
		h.view.Render(w, http.StatusOK, "register.html", view.Page{
			Flashes:     h.store.Flashes(w, r),
			FieldErrors: fieldErrs,
			Form:        map[string]string{"name": name, "email": email},
		})
		return
	}

	if _, err := h.service.Register(r.Context(), name, email, pass); err != nil {
		if errors.Is(err, authservice.ErrUserExists) {
			log.Info("registration conflict", slog.String("name", name))
			h.view.Render(w, http.StatusOK, "register.html", view.Page{
				Flashes: append(h.store.Flashes(w, r), "That username and/or email already exist."),
				Form:    map[string]string{"name": name, "email": email},
			})
			return
		}
		log.Error("registration failed", sl.Err(err))
		h.view.ServerError(w)
		return
	}

	log.Info("user registered", slog.String("name", name))
	h.store.Flash(w, r, "Thanks for registering. Please login.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
