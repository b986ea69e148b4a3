package repositories

import (
	"context"
	"database/sql"
	"errors"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/platform/obs"
)

// SQLDhikrRepository is the Postgres-backed DhikrRepository.
type SQLDhikrRepository struct {
	DB *sql.DB
}

func NewSQLDhikrRepository(db *sql.DB) *SQLDhikrRepository {
	return &SQLDhikrRepository{DB: db}
}

func (s *SQLDhikrRepository) ListDhikr(ctx context.Context) (_ []domain.Dhikr, err error) {
	defer obs.Time(ctx, "dhikr.sql.ListDhikr")(&err)

	if s.DB == nil {
		return nil, errors.New("dhikr repository: db is nil")
	}
	return listDhikr(ctx, s.DB)
}

func (s *SQLDhikrRepository) GetDhikr(ctx context.Context, id string) (_ domain.Dhikr, _ bool, err error) {
	defer obs.Time(ctx, "dhikr.sql.GetDhikr")(&err)

	if s.DB == nil {
		return domain.Dhikr{}, false, errors.New("dhikr repository: db is nil")
	}

	q := `
	SELECT dhikr_id, arabic, transliteration, translation, default_target
	FROM dhikr
	WHERE dhikr_id = $1;
	`
	return scanDhikr(s.DB.QueryRowContext(ctx, q, id), id)
}
