package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"qibla-zakat-service/internal/domain"
)

// SQLite-backed implementation of the DhikrRepository port.
type SqliteDhikrRepository struct{ DB *sql.DB }

func NewSqliteDhikrRepository(db *sql.DB) *SqliteDhikrRepository {
	return &SqliteDhikrRepository{DB: db}
}

func (s *SqliteDhikrRepository) ListDhikr(ctx context.Context) ([]domain.Dhikr, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite dhikr repository: DB is nil")
	}
	return listDhikr(ctx, s.DB)
}

func (s *SqliteDhikrRepository) GetDhikr(ctx context.Context, id string) (domain.Dhikr, bool, error) {
	if s.DB == nil {
		return domain.Dhikr{}, false, errors.New("sqlite dhikr repository: DB is nil")
	}

	query := `
	SELECT dhikr_id, arabic, transliteration, translation, default_target
	FROM dhikr
	WHERE dhikr_id = ?;
	`
	return scanDhikr(s.DB.QueryRowContext(ctx, query, id), id)
}

// Both dialects share the list query; it takes no placeholders.
func listDhikr(ctx context.Context, db *sql.DB) ([]domain.Dhikr, error) {
	query := `
	SELECT dhikr_id, arabic, transliteration, translation, default_target
	FROM dhikr
	ORDER BY default_target, dhikr_id;
	`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list dhikr: query dhikr table: %w", err)
	}
	defer rows.Close()

	var out []domain.Dhikr
	for rows.Next() {
		var d domain.Dhikr
		if err := rows.Scan(&d.ID, &d.Arabic, &d.Transliteration, &d.Translation, &d.DefaultTarget); err != nil {
			return nil, fmt.Errorf("list dhikr: scan row: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list dhikr: row iteration: %w", err)
	}

	return out, nil
}

func scanDhikr(row *sql.Row, id string) (domain.Dhikr, bool, error) {
	var d domain.Dhikr
	err := row.Scan(&d.ID, &d.Arabic, &d.Transliteration, &d.Translation, &d.DefaultTarget)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Dhikr{}, false, nil
	}
	if err != nil {
		return domain.Dhikr{}, false, fmt.Errorf("get dhikr %q: %w", id, err)
	}
	return d, true, nil
}
