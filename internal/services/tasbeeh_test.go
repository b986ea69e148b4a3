package services

import (
	"context"
	"errors"
	"qibla-zakat-service/internal/domain"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySessionRepo struct {
	sessions []domain.TasbeehSession
	saveErr  error
}

func (m *memorySessionRepo) SaveSession(ctx context.Context, s domain.TasbeehSession) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sessions = append(m.sessions, s)
	return nil
}

func (m *memorySessionRepo) ListSessions(ctx context.Context, limit int) ([]domain.TasbeehSession, error) {
	out := append([]domain.TasbeehSession(nil), m.sessions...)
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memorySessionRepo) PruneSessions(ctx context.Context, keep int) error {
	kept, _ := m.ListSessions(ctx, keep)
	m.sessions = kept
	return nil
}

type memoryDhikrRepo struct {
	rows map[string]domain.Dhikr
}

func newMemoryDhikrRepo(extra ...domain.Dhikr) *memoryDhikrRepo {
	m := &memoryDhikrRepo{rows: map[string]domain.Dhikr{}}
	for _, d := range append(append([]domain.Dhikr(nil), domain.DhikrCatalog...), extra...) {
		m.rows[d.ID] = d
	}
	return m
}

func (m *memoryDhikrRepo) ListDhikr(ctx context.Context) ([]domain.Dhikr, error) {
	out := make([]domain.Dhikr, 0, len(m.rows))
	for _, d := range m.rows {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryDhikrRepo) GetDhikr(ctx context.Context, id string) (domain.Dhikr, bool, error) {
	d, ok := m.rows[id]
	return d, ok, nil
}

type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func TestTasbeehServiceSaveAndRecent(t *testing.T) {
	ctx := context.Background()
	repo := &memorySessionRepo{}
	svc := NewTasbeehService(repo, newMemoryDhikrRepo(), &stepClock{t: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)})

	first, err := svc.Save(ctx, "subhanallah", 33, 0)
	require.NoError(t, err)
	assert.Equal(t, "subhanallah", first.DhikrID)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, 33, first.Target)
	assert.True(t, first.TargetReached())

	second, err := svc.Save(ctx, "istighfar", 12, 0)
	require.NoError(t, err)

	recent, err := svc.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second.ID, recent[0].ID)
	assert.Equal(t, first.ID, recent[1].ID)
}

func TestTasbeehServiceKeepsBoundedHistory(t *testing.T) {
	ctx := context.Background()
	repo := &memorySessionRepo{}
	svc := NewTasbeehService(repo, newMemoryDhikrRepo(), &stepClock{t: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)})

	var last domain.TasbeehSession
	for i := 0; i < domain.MaxSessionHistory+5; i++ {
		s, err := svc.Save(ctx, "allahuakbar", i, 0)
		require.NoError(t, err)
		last = s
	}

	recent, err := svc.Recent(ctx)
	require.NoError(t, err)
	assert.Len(t, recent, domain.MaxSessionHistory)
	assert.Len(t, repo.sessions, domain.MaxSessionHistory)
	assert.Equal(t, last.ID, recent[0].ID)
	assert.Equal(t, 5, recent[len(recent)-1].Count)
}

func TestTasbeehServiceValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewTasbeehService(&memorySessionRepo{}, newMemoryDhikrRepo(), nil)

	_, err := svc.Save(ctx, "unknown", 1, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownDhikr)

	_, err = svc.Save(ctx, "subhanallah", -1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidCount)

	_, err = svc.Save(ctx, "subhanallah", 1, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)

	failing := NewTasbeehService(&memorySessionRepo{saveErr: errors.New("disk full")}, newMemoryDhikrRepo(), nil)
	_, err = failing.Save(ctx, "subhanallah", 1, 0)
	assert.ErrorContains(t, err, "disk full")

	_, err = NewTasbeehService(nil, nil, nil).Recent(ctx)
	assert.Error(t, err)

	_, err = NewTasbeehService(&memorySessionRepo{}, nil, nil).Catalog(ctx)
	assert.Error(t, err)
}

func TestTasbeehServiceUsesStoredCatalog(t *testing.T) {
	ctx := context.Background()
	salawat := domain.Dhikr{ID: "salawat", Transliteration: "Salawat", DefaultTarget: 10}
	svc := NewTasbeehService(&memorySessionRepo{}, newMemoryDhikrRepo(salawat), nil)

	list, err := svc.Catalog(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(domain.DhikrCatalog)+1)

	s, err := svc.Save(ctx, "salawat", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Target)
	assert.True(t, s.TargetReached())
}

func TestTasbeehServiceCustomTarget(t *testing.T) {
	ctx := context.Background()
	svc := NewTasbeehService(&memorySessionRepo{}, newMemoryDhikrRepo(), nil)

	s, err := svc.Save(ctx, "subhanallah", 33, 99)
	require.NoError(t, err)
	assert.Equal(t, 99, s.Target)
	assert.False(t, s.TargetReached())

	s, err = svc.Save(ctx, "istighfar", 7, 7)
	require.NoError(t, err)
	assert.True(t, s.TargetReached())
}
