package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 4, hour, minute, 0, 0, time.UTC)
}

func TestAvailabilityWindow_Contains(t *testing.T) {
	w := AvailabilityWindow{Start: at(12, 0), End: at(18, 0)}

	assert.True(t, w.Contains(at(12, 0), at(14, 0)), "starts at window start")
	assert.True(t, w.Contains(at(16, 0), at(18, 0)), "ends at window end")
	assert.True(t, w.Contains(at(12, 0), at(18, 0)), "whole window")
	assert.False(t, w.Contains(at(11, 0), at(13, 0)), "starts before")
	assert.False(t, w.Contains(at(17, 0), at(19, 0)), "ends after")
	assert.Equal(t, 6*time.Hour, w.Duration())
}

func TestAvailability(t *testing.T) {
	source := map[int64][]AvailabilityWindow{
		3: {{Start: at(8, 0), End: at(10, 0)}, {Start: at(12, 0), End: at(18, 0)}},
		1: {},
	}
	a := NewAvailability(source)

	// изменения исходной map не влияют на результат
	source[3][0] = AvailabilityWindow{}
	delete(source, 1)

	assert.False(t, a.IsEmpty())
	assert.Equal(t, []int64{1, 3}, a.BoxIDs())

	ws, ok := a.Windows(3)
	require.True(t, ok)
	assert.Equal(t, at(8, 0), ws[0].Start)

	ws[0].Start = at(0, 0)
	again, _ := a.Windows(3)
	assert.Equal(t, at(8, 0), again[0].Start)

	_, ok = a.Windows(2)
	assert.False(t, ok)

	assert.True(t, a.Fits(3, at(12, 0), at(14, 0)))
	assert.False(t, a.Fits(3, at(9, 0), at(11, 0)))
	assert.False(t, a.Fits(1, at(9, 0), at(11, 0)))
}

func TestAvailability_Empty(t *testing.T) {
	a := NewAvailability(nil)
	assert.True(t, a.IsEmpty())
	assert.Empty(t, a.BoxIDs())
}
