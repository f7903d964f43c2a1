package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/taskr/internal/http/middlewarectx"
	"github.com/magabrotheeeer/taskr/internal/http/session"
	"github.com/magabrotheeeer/taskr/internal/http/view"
	"github.com/magabrotheeeer/taskr/internal/models"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) List(ctx context.Context) ([]*models.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Task), args.Error(1)
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

func getTasks(actor models.Actor) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
	ctx = context.WithValue(ctx, middlewarectx.ActorKey, actor)
	return req.WithContext(ctx)
}

func sampleTasks() []*models.Task {
	due := time.Date(2026, 10, 8, 0, 0, 0, 0, time.UTC)
	posted := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	return []*models.Task{
		{ID: 1, Name: "Go to the bank", DueDate: due, Priority: 1, PostedDate: posted,
			Status: models.StatusOpen, OwnerID: 2, OwnerName: "michael"},
		{ID: 2, Name: "Washing the car", DueDate: due, Priority: 2, PostedDate: posted,
			Status: models.StatusComplete, OwnerID: 3, OwnerName: "fletcher"},
	}
}

func TestListHandler_ShowsOpenAndClosedTasks(t *testing.T) {
	actor := models.Actor{ID: 2, Name: "michael", Role: models.RoleUser}
	svc := new(ServiceMock)
	handler := newTestHandler(t, svc)

	svc.On("List", mock.Anything).Return(sampleTasks(), nil).Once()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, getTasks(actor))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Welcome, michael")
	assert.Contains(t, body, "Go to the bank")
	assert.Contains(t, body, "Washing the car")
	assert.Contains(t, body, "10/08/2026")

	svc.AssertExpectations(t)
}

func TestListHandler_ActionLinksFollowOwnership(t *testing.T) {
	svc := new(ServiceMock)
	handler := newTestHandler(t, svc)

	// Актор владеет задачей 1, задача 2 принадлежит другому пользователю.
	actor := models.Actor{ID: 2, Name: "michael", Role: models.RoleUser}
	svc.On("List", mock.Anything).Return(sampleTasks(), nil).Once()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, getTasks(actor))

	body := rec.Body.String()
	assert.Contains(t, body, `/complete/1/`)
	assert.Contains(t, body, `/delete/1/`)
	assert.NotContains(t, body, `/delete/2/`)
}

func TestListHandler_AdminSeesAllActionLinks(t *testing.T) {
	svc := new(ServiceMock)
	handler := newTestHandler(t, svc)

	admin := models.Actor{ID: 1, Name: "admin", Role: models.RoleAdmin}
	svc.On("List", mock.Anything).Return(sampleTasks(), nil).Once()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, getTasks(admin))

	body := rec.Body.String()
	assert.Contains(t, body, `/complete/1/`)
	assert.Contains(t, body, `/delete/1/`)
	assert.Contains(t, body, `/delete/2/`)
}

func TestListHandler_ServiceError(t *testing.T) {
	svc := new(ServiceMock)
	handler := newTestHandler(t, svc)

	actor := models.Actor{ID: 2, Name: "michael", Role: models.RoleUser}
	svc.On("List", mock.Anything).Return(nil, errors.New("db error")).Once()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, getTasks(actor))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
