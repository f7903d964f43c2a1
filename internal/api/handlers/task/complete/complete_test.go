package complete

import (
	"context"
	"encoding/json"
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

	"github.com/magabrotheeeer/taskr/internal/api/middlewarectx"
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

func requestWithID(actor *models.Actor, id string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/"+id+"/complete", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	if actor != nil {
		ctx = context.WithValue(ctx, middlewarectx.ActorKey, *actor)
	}
	return req.WithContext(ctx)
}

func TestCompleteHandler_ServeHTTP(t *testing.T) {
	actor := models.Actor{ID: 2, Name: "michael", Role: models.RoleUser}
	done := &models.Task{ID: 10, Name: "Go to the bank", Status: models.StatusComplete, OwnerID: 2}

	tests := []struct {
		name           string
		id             string
		withActor      bool
		setupMocks     func(s *ServiceMock)
		wantStatusCode int
		wantStatus     string
		wantError      string
	}{
		{
			name:      "success",
			id:        "10",
			withActor: true,
			setupMocks: func(s *ServiceMock) {
				s.On("Complete", mock.Anything, actor, 10).Return(done, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:      "unknown id",
			id:        "99",
			withActor: true,
			setupMocks: func(s *ServiceMock) {
				s.On("Complete", mock.Anything, actor, 99).Return(nil, taskservice.ErrNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantStatus:     "Error",
			wantError:      "element does not exist",
		},
		{
			name:      "forbidden for non-owner",
			id:        "10",
			withActor: true,
			setupMocks: func(s *ServiceMock) {
				s.On("Complete", mock.Anything, actor, 10).Return(nil, taskservice.ErrForbidden).Once()
			},
			wantStatusCode: http.StatusForbidden,
			wantStatus:     "Error",
			wantError:      "you can only update tasks that belong to you",
		},
		{
			name:           "missing actor",
			id:             "10",
			withActor:      false,
			setupMocks:     func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
			wantError:      "unauthorized",
		},
		{
			name:           "non-numeric id",
			id:             "abc",
			withActor:      true,
			setupMocks:     func(_ *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "invalid id",
		},
		{
			name:      "storage failure",
			id:        "10",
			withActor: true,
			setupMocks: func(s *ServiceMock) {
				s.On("Complete", mock.Anything, actor, 10).Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
			wantError:      "could not complete task",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			handler := New(newNoopLogger(), svc)

			tt.setupMocks(svc)

			var actorPtr *models.Actor
			if tt.withActor {
				actorPtr = &actor
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWithID(actorPtr, tt.id))

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			}
			if tt.wantStatusCode == http.StatusOK {
				data := got["data"].(map[string]any)
				assert.Equal(t, float64(10), data["id"])
				assert.Equal(t, "complete", data["status"])
			}

			svc.AssertExpectations(t)
		})
	}
}
