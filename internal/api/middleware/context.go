package middleware

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

type contextKey int

const (
	actorKey contextKey = iota
	requestIDKey
)

// WithActor кладет пользователя запроса в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor достает пользователя, установленного Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetRequestID достает ID запроса, установленный RequestID
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
