package remove

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

func (m *ServiceMock) Delete(ctx context.Context, actor models.Actor, id int) error {
	return m.Called(ctx, actor, id).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func requestWithID(actor *models.Actor, id string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/"+id, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	if actor != nil {
		ctx = context.WithValue(ctx, middlewarectx.ActorKey, *actor)
	}
	return req.WithContext(ctx)
}

func TestRemoveHandler_ServeHTTP(t *testing.T) {
	actor := models.Actor{ID: 2, Name: "michael", Role: models.RoleUser}

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
				s.On("Delete", mock.Anything, actor, 10).Return(nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:      "unknown id",
			id:        "99",
			withActor: true,
			setupMocks: func(s *ServiceMock) {
				s.On("Delete", mock.Anything, actor, 99).Return(taskservice.ErrNotFound).Once()
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
				s.On("Delete", mock.Anything, actor, 10).Return(taskservice.ErrForbidden).Once()
			},
			wantStatusCode: http.StatusForbidden,
			wantStatus:     "Error",
			wantError:      "you can only delete tasks that belong to you",
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
				s.On("Delete", mock.Anything, actor, 10).Return(errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
			wantError:      "could not delete task",
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
				assert.Equal(t, float64(10), data["deleted_id"])
			}

			svc.AssertExpectations(t)
		})
	}
}
