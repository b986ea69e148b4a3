package services

import (
	"context"
	"errors"
	"fmt"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/platform/obs"
	"qibla-zakat-service/internal/ports"

	"github.com/google/uuid"
)

// TasbeehService records counter sessions against the stored dhikr catalog
// and keeps a bounded history.
type TasbeehService struct {
	Repo  ports.SessionRepository
	Dhikr ports.DhikrRepository
	Clock ports.Clock
}

func NewTasbeehService(repo ports.SessionRepository, dhikr ports.DhikrRepository, clock ports.Clock) *TasbeehService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &TasbeehService{Repo: repo, Dhikr: dhikr, Clock: clock}
}

// Catalog lists the phrases a session can be recorded against.
func (s *TasbeehService) Catalog(ctx context.Context) ([]domain.Dhikr, error) {
	if s.Dhikr == nil {
		return nil, errors.New("list dhikr: repository is nil")
	}

	list, err := s.Dhikr.ListDhikr(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dhikr: %w", err)
	}
	return list, nil
}

// Save persists a finished session and trims history to MaxSessionHistory.
// A zero target means the dhikr's default target.
func (s *TasbeehService) Save(ctx context.Context, dhikrID string, count, target int) (_ domain.TasbeehSession, err error) {
	defer obs.Time(ctx, "tasbeeh.Save")(&err)

	if s.Repo == nil || s.Dhikr == nil {
		return domain.TasbeehSession{}, errors.New("save session: repository is nil")
	}

	if count < 0 {
		return domain.TasbeehSession{}, fmt.Errorf("save session: count=%d: %w", count, domain.ErrInvalidCount)
	}
	if target < 0 {
		return domain.TasbeehSession{}, fmt.Errorf("save session: target=%d: %w", target, domain.ErrInvalidTarget)
	}

	d, ok, err := s.Dhikr.GetDhikr(ctx, dhikrID)
	if err != nil {
		return domain.TasbeehSession{}, fmt.Errorf("save session: %w", err)
	}
	if !ok {
		return domain.TasbeehSession{}, fmt.Errorf("save session: %q: %w", dhikrID, domain.ErrUnknownDhikr)
	}
	if target == 0 {
		target = d.DefaultTarget
	}

	session := domain.TasbeehSession{
		ID:         uuid.New(),
		DhikrID:    d.ID,
		Count:      count,
		Target:     target,
		RecordedAt: s.Clock.Now(),
	}

	if err := s.Repo.SaveSession(ctx, session); err != nil {
		return domain.TasbeehSession{}, fmt.Errorf("save session: %w", err)
	}

	if err := s.Repo.PruneSessions(ctx, domain.MaxSessionHistory); err != nil {
		return domain.TasbeehSession{}, fmt.Errorf("save session: prune history: %w", err)
	}

	return session, nil
}

// Recent returns saved sessions, newest first.
func (s *TasbeehService) Recent(ctx context.Context) ([]domain.TasbeehSession, error) {
	if s.Repo == nil {
		return nil, errors.New("recent sessions: repository is nil")
	}

	sessions, err := s.Repo.ListSessions(ctx, domain.MaxSessionHistory)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	return sessions, nil
}
