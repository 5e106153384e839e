package update_booking_state

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

type stubService struct {
	err      error
	gotActor domain.Actor
	gotID    int64
	gotState string
}

func (s *stubService) UpdateState(_ context.Context, actor domain.Actor, id int64, req *models.UpdateStateRequest) (*models.BookingResponse, error) {
	s.gotActor, s.gotID, s.gotState = actor, id, req.State
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, State: req.State}, nil
}

func patch(h *Handler, id, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+id+"/state", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"bookingId": id})
	r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{UserID: 5}))
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Success(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.Nop())

	w := patch(h, "7", `{"state":"EXCEPTION"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), svc.gotID)
	assert.Equal(t, int64(5), svc.gotActor.UserID)
	assert.Equal(t, "EXCEPTION", svc.gotState)
	assert.Contains(t, w.Body.String(), `"state":"EXCEPTION"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		body   string
		err    error
		status int
	}{
		{"bad id", "x", `{"state":"ACCEPTED"}`, nil, http.StatusBadRequest},
		{"bad body", "7", `state=ACCEPTED`, nil, http.StatusBadRequest},
		{"not found", "7", `{"state":"ACCEPTED"}`, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"forbidden", "7", `{"state":"ACCEPTED"}`, bookings.ErrAccessDenied, http.StatusForbidden},
		{"unknown state", "7", `{"state":"DONE"}`, bookings.ErrInvalidInput, http.StatusBadRequest},
		{"transition", "7", `{"state":"CREATED"}`, bookings.ErrInvalidTransition, http.StatusBadRequest},
		{"race", "7", `{"state":"ACCEPTED"}`, bookings.ErrStateChanged, http.StatusConflict},
		{"internal", "7", `{"state":"ACCEPTED"}`, bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, logger.Nop())
			assert.Equal(t, tt.status, patch(h, tt.id, tt.body).Code)
		})
	}
}

func TestHandle_NoActor(t *testing.T) {
	h := NewHandler(&stubService{}, logger.Nop())
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/7/state", strings.NewReader(`{"state":"ACCEPTED"}`))
	r = mux.SetURLVars(r, map[string]string{"bookingId": "7"})
	w := httptest.NewRecorder()

	h.Handle(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
