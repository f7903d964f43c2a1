package complete

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/taskr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/taskr/internal/http/session"
	"github.com/magabrotheeeer/taskr/internal/http/view"
	"github.com/magabrotheeeer/taskr/internal/models"
	taskservice "github.com/magabrotheeeer/taskr/internal/services/task"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Complete(ctx context.Context, actor models.Actor, id int) (*models.Task, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestHandler(t *testing.T, svc Service) *Handler {
	t.Helper()
	logger := newNoopLogger()
	store := session.NewStore("test_session_secret", logger)
	v, err := view.New(logger)
	require.NoError(t, err)
	return New(logger, svc, store, v)
}

func requestWithID(actor models.Actor, id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/complete/"+id+"/", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	ctx = context.WithValue(ctx, middlewarectx.ActorKey, actor)
	return req.WithContext(ctx)
}

func TestCompleteHandler_ServeHTTP(t *testing.T) {
	actor := models.Actor{ID: 2, Name: "michael", Role: models.RoleUser}
	done := &models.Task{ID: 10, Name: "Go to the bank", Status: models.StatusComplete, OwnerID: 2}

	tests := []struct {
		name         string
		id           string
		setupMocks   func(s *ServiceMock)
		wantCode     int
		wantLocation string
		wantBody     string
	}{
		{
			name: "success redirects to tasks",
			id:   "10",
			setupMocks: func(s *ServiceMock) {
				s.On("Complete", mock.Anything, actor, 10).Return(done, nil).Once()
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: "/tasks/",
		},
		{
			name: "unknown id renders 404 page",
			id:   "99",
			setupMocks: func(s *ServiceMock) {
				s.On("Complete", mock.Anything, actor, 99).Return(nil, taskservice.ErrNotFound).Once()
			},
			wantCode: http.StatusNotFound,
			wantBody: "Sorry, there's nothing here.",
		},
		{
			name: "forbidden redirects with no state change",
			id:   "10",
			setupMocks: func(s *ServiceMock) {
				s.On("Complete", mock.Anything, actor, 10).Return(nil, taskservice.ErrForbidden).Once()
			},
			wantCode:     http.StatusSeeOther,
			wantLocation: "/tasks/",
		},
		{
			name:       "non-numeric id renders 404 page",
			id:         "abc",
			setupMocks: func(_ *ServiceMock) {},
			wantCode:   http.StatusNotFound,
			wantBody:   "Sorry, there's nothing here.",
		},
		{
			name: "storage failure renders error page",
			id:   "10",
			setupMocks: func(s *ServiceMock) {
				s.On("Complete", mock.Anything, actor, 10).Return(nil, errors.New("db error")).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			handler := newTestHandler(t, svc)

			tt.setupMocks(svc)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWithID(actor, tt.id))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}

			svc.AssertExpectations(t)
		})
	}
}
