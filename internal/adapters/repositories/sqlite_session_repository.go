package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"qibla-zakat-service/internal/domain"
	"time"

	"github.com/google/uuid"
)

// Fixed-width UTC layout so recorded_at sorts lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite-backed implementation of the SessionRepository port.
type SqliteSessionRepository struct{ DB *sql.DB }

func NewSqliteSessionRepository(db *sql.DB) *SqliteSessionRepository {
	return &SqliteSessionRepository{DB: db}
}

func (s *SqliteSessionRepository) SaveSession(ctx context.Context, session domain.TasbeehSession) error {
	if s.DB == nil {
		return errors.New("sqlite session repository: DB is nil")
	}

	query := `
	INSERT INTO tasbeeh_sessions (
		session_id,
		dhikr_id,
		count,
		target,
		recorded_at
	)
	VALUES (?, ?, ?, ?, ?);
	`
	_, err := s.DB.ExecContext(ctx, query,
		session.ID.String(),
		session.DhikrID,
		session.Count,
		session.Target,
		session.RecordedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save session: insert session_id=%s: %w", session.ID, err)
	}

	return nil
}

// Return up to limit sessions, newest first.
func (s *SqliteSessionRepository) ListSessions(ctx context.Context, limit int) ([]domain.TasbeehSession, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite session repository: DB is nil")
	}

	query := `
	SELECT
		session_id,
		dhikr_id,
		count,
		target,
		recorded_at
	FROM tasbeeh_sessions
	ORDER BY recorded_at DESC, session_id DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: query tasbeeh_sessions table: %w", err)
	}
	defer rows.Close()

	sessions := make([]domain.TasbeehSession, 0, limit)
	for rows.Next() {
		var id, dhikrID, recordedAt string
		var count, target int
		if err := rows.Scan(&id, &dhikrID, &count, &target, &recordedAt); err != nil {
			return nil, fmt.Errorf("list sessions: scan row: %w", err)
		}

		sid, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("list sessions: parse session_id %q: %w", id, err)
		}
		at, err := time.Parse(sqliteTimeLayout, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("list sessions: parse recorded_at %q: %w", recordedAt, err)
		}

		sessions = append(sessions, domain.TasbeehSession{
			ID:         sid,
			DhikrID:    dhikrID,
			Count:      count,
			Target:     target,
			RecordedAt: at,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: row iteration: %w", err)
	}

	return sessions, nil
}

// Delete all but the newest keep sessions.
func (s *SqliteSessionRepository) PruneSessions(ctx context.Context, keep int) error {
	if s.DB == nil {
		return errors.New("sqlite session repository: DB is nil")
	}

	query := `
	DELETE FROM tasbeeh_sessions
	WHERE session_id NOT IN (
		SELECT session_id
		FROM tasbeeh_sessions
		ORDER BY recorded_at DESC, session_id DESC
		LIMIT ?
	);
	`
	if _, err := s.DB.ExecContext(ctx, query, keep); err != nil {
		return fmt.Errorf("prune sessions: keep=%d: %w", keep, err)
	}

	return nil
}
