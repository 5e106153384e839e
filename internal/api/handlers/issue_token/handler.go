package issue_token

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/auth"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingCredentials = "email и пароль обязательны"
	msgInvalidCredentials = "неверный email или пароль"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/token
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req IssueTokenRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/token - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		h.logger.Warn("POST /auth/token - Missing credentials")
		handlers.RespondBadRequest(w, msgMissingCredentials)
		return
	}

	token, err := h.service.IssueToken(r.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Warn("POST /auth/token - Invalid credentials")
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
			return
		}
		h.logger.Error("POST /auth/token - Failed to issue token: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/token - Token issued successfully")
	handlers.RespondJSON(w, http.StatusOK, token)
}
