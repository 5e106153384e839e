package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAdmission(t *testing.T) {
	m := NewWithRegistry("carwash", prometheus.NewRegistry())

	m.RecordAdmission(OutcomeAdmitted)
	m.RecordAdmission(OutcomeAdmitted)
	m.RecordAdmission(OutcomeNotAvailable)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingAdmissions.WithLabelValues(OutcomeAdmitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingAdmissions.WithLabelValues(OutcomeNotAvailable)))
}

func TestObserveHTTPRequest(t *testing.T) {
	m := NewWithRegistry("carwash", prometheus.NewRegistry())

	m.ObserveHTTPRequest("GET", "/api/v1/car_washes/{id}/available_times", "200", 15*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/car_washes/{id}/available_times", "200")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordAdmission(OutcomeAdmitted)
		m.ObserveHTTPRequest("GET", "/", "200", time.Second)
		m.ObserveDBQuery("select", "ok", time.Second)
	})
}
