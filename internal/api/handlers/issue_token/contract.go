package issue_token

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/auth"
)

type AuthService interface {
	IssueToken(ctx context.Context, email, password string) (*auth.Token, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
