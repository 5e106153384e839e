package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

type stubCompleter struct {
	mu    sync.Mutex
	calls []time.Time
	count int64
	err   error
}

func (s *stubCompleter) CompleteFinished(_ context.Context, now time.Time) (*models.CompleteFinishedResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, now)
	if s.err != nil {
		return nil, s.err
	}
	return &models.CompleteFinishedResponse{Completed: s.count}, nil
}

func (s *stubCompleter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler(&stubCompleter{}, "every five minutes", logger.Nop())
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	completer := &stubCompleter{count: 3}
	s, err := NewScheduler(completer, "@every 5m", logger.Nop())
	require.NoError(t, err)

	fixed := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	completed, err := s.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), completed)
	require.Len(t, completer.calls, 1)
	assert.Equal(t, fixed, completer.calls[0])
}

func TestRunOnce_Error(t *testing.T) {
	s, err := NewScheduler(&stubCompleter{err: errors.New("db down")}, "@every 5m", logger.Nop())
	require.NoError(t, err)

	_, err = s.RunOnce(context.Background())

	assert.EqualError(t, err, "db down")
}

func TestScheduler_Runs(t *testing.T) {
	completer := &stubCompleter{}
	s, err := NewScheduler(completer, "@every 1s", logger.Nop())
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return completer.callCount() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
