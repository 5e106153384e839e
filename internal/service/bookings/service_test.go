package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*domain.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepo) GetByUserID(ctx context.Context, userID int64, state *domain.BookingState) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID, state)
	bookings, _ := args.Get(0).([]*domain.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) GetByCarWashWithFilter(ctx context.Context, filter domain.CarWashBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	bookings, _ := args.Get(0).([]*domain.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) UpdateState(ctx context.Context, id int64, from, to domain.BookingState) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockBookingRepo) SetException(ctx context.Context, id int64, isException bool) error {
	return m.Called(ctx, id, isException).Error(0)
}

func (m *mockBookingRepo) CompleteFinished(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) LockBox(ctx context.Context, boxID int64) error {
	return m.Called(ctx, boxID).Error(0)
}

type mockBoxRepo struct {
	mock.Mock
}

func (m *mockBoxRepo) GetBox(ctx context.Context, id int64) (*domain.Box, error) {
	args := m.Called(ctx, id)
	box, _ := args.Get(0).(*domain.Box)
	return box, args.Error(1)
}

type mockAdmission struct {
	mock.Mock
}

func (m *mockAdmission) IsBookingPossible(ctx context.Context, box *domain.Box, start, end time.Time) (bool, error) {
	args := m.Called(ctx, box, start, end)
	return args.Bool(0), args.Error(1)
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var (
	ctx      = context.Background()
	owner    = domain.Actor{UserID: 5}
	operator = domain.Actor{UserID: 9}
	stranger = domain.Actor{UserID: 13}
	admin    = domain.Actor{UserID: 1, IsAdmin: true}
	start    = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
)

func newTestService() (*Service, *mockBookingRepo, *mockBoxRepo, *mockAdmission) {
	bookings := &mockBookingRepo{}
	boxes := &mockBoxRepo{}
	admission := &mockAdmission{}

	boxes.On("GetBox", mock.Anything, int64(2)).
		Return(&domain.Box{ID: 2, CarWashID: 10, UserID: ptr.Ptr(operator.UserID)}, nil).Maybe()

	return NewService(bookings, boxes, admission, inlineTx{}, logger.Nop()), bookings, boxes, admission
}

func booking(state domain.BookingState) *domain.Booking {
	return &domain.Booking{
		ID:            100,
		BoxID:         2,
		UserID:        owner.UserID,
		StartDatetime: start,
		EndDatetime:   start.Add(2 * time.Hour),
		State:         state,
	}
}

func TestGetByID_Access(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{name: "owner", actor: owner},
		{name: "operator", actor: operator},
		{name: "admin", actor: admin},
		{name: "stranger", actor: stranger, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, bookings, _, _ := newTestService()
			bookings.On("GetByID", ctx, int64(100)).Return(booking(domain.StateCreated), nil)

			resp, err := s.GetByID(ctx, tt.actor, 100)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "2024-01-15T12:00:00", resp.StartDatetime)
			assert.Equal(t, []domain.BookingAddition{}, resp.Additions)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	s, bookings, _, _ := newTestService()
	bookings.On("GetByID", ctx, int64(100)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := s.GetByID(ctx, owner, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_InvalidState(t *testing.T) {
	s, _, _, _ := newTestService()

	_, err := s.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: 5, State: ptr.Ptr("LOST")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserBookings(t *testing.T) {
	s, bookings, _, _ := newTestService()
	state := domain.StateCreated
	bookings.On("GetByUserID", ctx, int64(5), &state).Return([]*domain.Booking{booking(domain.StateCreated)}, nil)

	resp, err := s.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: 5, State: ptr.Ptr("CREATED")})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestGetCarWashBookings_Access(t *testing.T) {
	s, bookings, _, _ := newTestService()
	bookings.On("GetByCarWashWithFilter", ctx, mock.Anything).Return([]*domain.Booking{}, nil)

	_, err := s.GetCarWashBookings(ctx, admin, &models.GetCarWashBookingsRequest{CarWashID: 10})
	require.NoError(t, err)

	_, err = s.GetCarWashBookings(ctx, operator, &models.GetCarWashBookingsRequest{CarWashID: 10, BoxID: ptr.Ptr(int64(2))})
	require.NoError(t, err)

	_, err = s.GetCarWashBookings(ctx, operator, &models.GetCarWashBookingsRequest{CarWashID: 10})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.GetCarWashBookings(ctx, operator, &models.GetCarWashBookingsRequest{CarWashID: 11, BoxID: ptr.Ptr(int64(2))})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateState(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Actor
		from    domain.BookingState
		to      string
		wantErr error
	}{
		{name: "operator accepts", actor: operator, from: domain.StateCreated, to: "ACCEPTED"},
		{name: "admin starts", actor: admin, from: domain.StateAccepted, to: "STARTED"},
		{name: "owner cancels", actor: owner, from: domain.StateAccepted, to: "EXCEPTION"},
		{name: "owner cannot accept", actor: owner, from: domain.StateCreated, to: "ACCEPTED", wantErr: ErrAccessDenied},
		{name: "skip step", actor: operator, from: domain.StateCreated, to: "STARTED", wantErr: ErrInvalidTransition},
		{name: "from terminal", actor: admin, from: domain.StateCompleted, to: "EXCEPTION", wantErr: ErrInvalidTransition},
		{name: "unknown state", actor: admin, from: domain.StateCreated, to: "LOST", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, bookings, _, _ := newTestService()
			bookings.On("GetByID", ctx, int64(100)).Return(booking(tt.from), nil).Maybe()
			bookings.On("UpdateState", ctx, int64(100), tt.from, domain.BookingState(tt.to)).Return(nil).Maybe()

			resp, err := s.UpdateState(ctx, tt.actor, 100, &models.UpdateStateRequest{State: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				bookings.AssertNotCalled(t, "UpdateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.State)
		})
	}
}

func TestUpdateState_Concurrent(t *testing.T) {
	s, bookings, _, _ := newTestService()
	bookings.On("GetByID", ctx, int64(100)).Return(booking(domain.StateCreated), nil)
	bookings.On("UpdateState", ctx, int64(100), domain.StateCreated, domain.StateAccepted).Return(bookingRepo.ErrStateChanged)

	_, err := s.UpdateState(ctx, operator, 100, &models.UpdateStateRequest{State: "ACCEPTED"})
	assert.ErrorIs(t, err, ErrStateChanged)
}

func TestSetException_AdminOnly(t *testing.T) {
	s, _, _, _ := newTestService()

	_, err := s.SetException(ctx, operator, 100, &models.SetExceptionRequest{IsException: true})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetException_Mark(t *testing.T) {
	s, bookings, _, admission := newTestService()
	bookings.On("GetByID", ctx, int64(100)).Return(booking(domain.StateCreated), nil)
	bookings.On("SetException", ctx, int64(100), true).Return(nil)

	resp, err := s.SetException(ctx, admin, 100, &models.SetExceptionRequest{IsException: true})
	require.NoError(t, err)
	assert.True(t, resp.IsException)
	admission.AssertNotCalled(t, "IsBookingPossible", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetException_ClearChecksWindow(t *testing.T) {
	s, bookings, _, admission := newTestService()
	exception := booking(domain.StateCreated)
	exception.IsException = true

	bookings.On("GetByID", ctx, int64(100)).Return(exception, nil)
	bookings.On("LockBox", ctx, int64(2)).Return(nil)
	admission.On("IsBookingPossible", ctx, mock.Anything, start, start.Add(2*time.Hour)).Return(false, nil)

	_, err := s.SetException(ctx, admin, 100, &models.SetExceptionRequest{IsException: false})
	assert.ErrorIs(t, err, ErrBookingNotAvailable)
	bookings.AssertNotCalled(t, "SetException", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteFinished(t *testing.T) {
	s, bookings, _, _ := newTestService()
	now := start.Add(3 * time.Hour)
	bookings.On("CompleteFinished", ctx, now).Return(int64(4), nil)

	resp, err := s.CompleteFinished(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.Completed)
}
