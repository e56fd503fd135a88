package api

import (
	"context"

	"niti/internal/domain/entities"
)

type contextKey string

const sessionContextKey contextKey = "session"

func withSession(ctx context.Context, s *entities.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

func sessionFromContext(ctx context.Context) (*entities.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(*entities.Session)
	return s, ok && s != nil
}
