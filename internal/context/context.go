package ctx

import (
	"context"

	"github.com/presensi-sales/backend/internal/service"
)

type contextKey string

const (
	SessionContextKey contextKey = "session"
)

type Session = service.Session

func WithSession(parent context.Context, session Session) context.Context {
	return context.WithValue(parent, SessionContextKey, session)
}

func GetSessionFromContext(c context.Context) (Session, bool) {
	session, ok := c.Value(SessionContextKey).(Session)
	return session, ok
}
