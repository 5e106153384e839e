package get_car_wash_bookings

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(10, url.Values{
		"boxId":             {"2"},
		"state":             {"ACCEPTED"},
		"date":              {"2024-01-15"},
		"includeExceptions": {"true"},
	})
	require.NoError(t, err)

	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(10), req.CarWashID)
	require.NotNil(t, req.BoxID)
	assert.Equal(t, int64(2), *req.BoxID)
	assert.Equal(t, "ACCEPTED", *req.State)
	assert.True(t, req.StartDate.Equal(day))
	assert.True(t, req.EndDate.Equal(day))
	assert.True(t, req.IncludeExceptions)
}

func TestToServiceRequest_Period(t *testing.T) {
	req, err := ToServiceRequest(10, url.Values{
		"startDate": {"2024-01-15"},
		"endDate":   {"2024-01-21"},
	})
	require.NoError(t, err)

	assert.Nil(t, req.BoxID)
	assert.Nil(t, req.State)
	assert.Equal(t, 21, req.EndDate.Day())
	assert.False(t, req.IncludeExceptions)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	for _, q := range []url.Values{
		{"boxId": {"two"}},
		{"date": {"15/01/2024"}},
		{"startDate": {"2024-13-01"}},
		{"includeExceptions": {"maybe"}},
	} {
		_, err := ToServiceRequest(10, q)
		assert.Error(t, err, q.Encode())
	}
}
