package ports

import (
	"context"
	"qibla-zakat-service/internal/domain"
	"time"
)

// Port: a boundary for persisting tasbeeh sessions.
type SessionRepository interface {
	SaveSession(ctx context.Context, s domain.TasbeehSession) error
	// Return up to limit sessions, newest first.
	ListSessions(ctx context.Context, limit int) ([]domain.TasbeehSession, error)
	// Delete all but the newest keep sessions.
	PruneSessions(ctx context.Context, keep int) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
