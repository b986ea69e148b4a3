package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/platform/obs"
	"time"

	"github.com/google/uuid"
)

// SQLSessionRepository is the Postgres-backed SessionRepository.
type SQLSessionRepository struct {
	DB *sql.DB
}

func NewSQLSessionRepository(db *sql.DB) *SQLSessionRepository {
	return &SQLSessionRepository{DB: db}
}

func (s *SQLSessionRepository) SaveSession(ctx context.Context, session domain.TasbeehSession) (err error) {
	defer obs.Time(ctx, "sessions.sql.SaveSession")(&err)

	if s.DB == nil {
		return errors.New("session repository: db is nil")
	}

	q := `
	INSERT INTO tasbeeh_sessions (session_id, dhikr_id, count, target, recorded_at)
	VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := s.DB.ExecContext(ctx, q,
		session.ID.String(), session.DhikrID, session.Count, session.Target, session.RecordedAt.UTC(),
	); err != nil {
		return fmt.Errorf("save session: insert session_id=%s: %w", session.ID, err)
	}

	return nil
}

func (s *SQLSessionRepository) ListSessions(ctx context.Context, limit int) (_ []domain.TasbeehSession, err error) {
	defer obs.Time(ctx, "sessions.sql.ListSessions")(&err)

	if s.DB == nil {
		return nil, errors.New("session repository: db is nil")
	}

	q := `
	SELECT session_id, dhikr_id, count, target, recorded_at
	FROM tasbeeh_sessions
	ORDER BY recorded_at DESC, session_id DESC
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: query tasbeeh_sessions table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.TasbeehSession, 0, limit)
	for rows.Next() {
		var id, dhikrID string
		var count, target int
		var at time.Time
		if err := rows.Scan(&id, &dhikrID, &count, &target, &at); err != nil {
			return nil, fmt.Errorf("list sessions: scan rows: %w", err)
		}

		sid, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("list sessions: parse session_id %q: %w", id, err)
		}
		out = append(out, domain.TasbeehSession{
			ID:         sid,
			DhikrID:    dhikrID,
			Count:      count,
			Target:     target,
			RecordedAt: at.UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLSessionRepository) PruneSessions(ctx context.Context, keep int) (err error) {
	defer obs.Time(ctx, "sessions.sql.PruneSessions")(&err)

	if s.DB == nil {
		return errors.New("session repository: db is nil")
	}

	q := `
	DELETE FROM tasbeeh_sessions
	WHERE session_id NOT IN (
		SELECT session_id
		FROM tasbeeh_sessions
		ORDER BY recorded_at DESC, session_id DESC
		LIMIT $1
	);
	`
	if _, err := s.DB.ExecContext(ctx, q, keep); err != nil {
		return fmt.Errorf("prune sessions: keep=%d: %w", keep, err)
	}

	return nil
}
