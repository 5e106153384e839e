package upsert_schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/schedules"
	"github.com/m04kA/SMC-CarWashService/internal/service/schedules/models"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Upsert(ctx context.Context, actor domain.Actor, carWashID int64, req *models.UpsertScheduleRequest) (*models.ScheduleResponse, error) {
	args := m.Called(ctx, actor, carWashID, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.ScheduleResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

var admin = domain.Actor{UserID: 1, IsAdmin: true}

func put(h *Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/car_washes/10/schedules", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"carWashId": "10"})
	r = r.WithContext(middleware.WithActor(r.Context(), admin))
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Saved(t *testing.T) {
	svc := new(mockService)
	svc.On("Upsert", mock.Anything, admin, int64(10), mock.MatchedBy(func(req *models.UpsertScheduleRequest) bool {
		return req.DayOfWeek == 0 && req.StartTime == "08:00" && req.EndTime == "18:00" && req.IsAvailable == nil
	})).Return(&models.ScheduleResponse{ID: 3, CarWashID: 10, StartTime: "08:00", EndTime: "18:00", IsAvailable: true}, nil)

	w := put(NewHandler(svc, logger.Nop()), `{"dayOfWeek":0,"startTime":"08:00","endTime":"18:00"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":3`)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"forbidden", schedules.ErrAccessDenied, http.StatusForbidden},
		{"invalid", schedules.ErrInvalidInput, http.StatusBadRequest},
		{"car wash", schedules.ErrCarWashNotFound, http.StatusNotFound},
		{"internal", schedules.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("Upsert", mock.Anything, admin, int64(10), mock.Anything).Return(nil, tt.err)

			w := put(NewHandler(svc, logger.Nop()), `{"dayOfWeek":7,"startTime":"18:00","endTime":"08:00"}`)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandle_BadBody(t *testing.T) {
	svc := new(mockService)

	w := put(NewHandler(svc, logger.Nop()), `{"dayOfWeek":"monday"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
