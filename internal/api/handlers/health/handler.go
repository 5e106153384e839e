package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// Checker проверка зависимости для /ready
type Checker interface {
	Check(ctx context.Context) error
}

// CheckFunc адаптер функции к Checker
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error {
	return f(ctx)
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// StatusResponse ответ проверок
type StatusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type Handler struct {
	checks map[string]Checker
	logger Logger
}

func NewHandler(checks map[string]Checker, logger Logger) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Live GET /health
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// Ready GET /ready, 503 если хотя бы одна зависимость недоступна
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := StatusResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	status := http.StatusOK
	for _, name := range names {
		if err := h.checks[name].Check(ctx); err != nil {
			h.logger.Warn("GET /ready - %s is not ready: %v", name, err)
			resp.Checks[name] = err.Error()
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	handlers.RespondJSON(w, status, resp)
}
