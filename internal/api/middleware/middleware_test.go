package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/metrics"
)

type stubParser map[string]domain.Actor

func (p stubParser) ParseToken(raw string) (domain.Actor, error) {
	if actor, ok := p[raw]; ok {
		return actor, nil
	}
	return domain.Actor{}, errors.New("bad token")
}

var parser = stubParser{
	"user-token":  {UserID: 5},
	"admin-token": {UserID: 1, IsAdmin: true},
}

func echoActor(w http.ResponseWriter, r *http.Request) {
	actor, ok := GetActor(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	if actor.IsAdmin {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func serve(h http.Handler, token string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuth(t *testing.T) {
	h := Auth(parser)(http.HandlerFunc(echoActor))

	assert.Equal(t, http.StatusOK, serve(h, "user-token"))
	assert.Equal(t, http.StatusAccepted, serve(h, "admin-token"))
	assert.Equal(t, http.StatusUnauthorized, serve(h, "forged"))
	assert.Equal(t, http.StatusUnauthorized, serve(h, ""))
}

func TestRequireAdmin(t *testing.T) {
	h := Auth(parser)(RequireAdmin(http.HandlerFunc(echoActor)))

	assert.Equal(t, http.StatusForbidden, serve(h, "user-token"))
	assert.Equal(t, http.StatusAccepted, serve(h, "admin-token"))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, given, seen)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)
	h := Auth(parser)(limiter.Middleware(http.HandlerFunc(echoActor)))

	assert.Equal(t, http.StatusOK, serve(h, "user-token"))
	assert.Equal(t, http.StatusOK, serve(h, "user-token"))
	assert.Equal(t, http.StatusTooManyRequests, serve(h, "user-token"))

	// у другого пользователя свой лимит
	assert.Equal(t, http.StatusAccepted, serve(h, "admin-token"))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("carwash", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/car_washes/{id}/available_times", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/car_washes/42/available_times", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("GET", "/car_washes/{id}/available_times", "404")))
}
