package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"qibla-zakat-service/internal/domain"
	"strings"
)

// Dialect selects placeholder and DDL flavour.
type Dialect int

const (
	DialectSqlite Dialect = iota
	DialectPostgres
)

// Initialize the database schema for the given dialect.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	recordedAtType := "TEXT"
	if dialect == DialectPostgres {
		recordedAtType = "TIMESTAMPTZ"
	}

	createDhikrQuery := `
	CREATE TABLE IF NOT EXISTS dhikr (
		dhikr_id TEXT PRIMARY KEY,
		arabic TEXT NOT NULL,
		transliteration TEXT NOT NULL,
		translation TEXT NOT NULL,
		default_target INTEGER NOT NULL
	);
	`

	createSessionsQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS tasbeeh_sessions (
		session_id TEXT PRIMARY KEY,
		dhikr_id TEXT NOT NULL,
		count INTEGER NOT NULL,
		target INTEGER NOT NULL,
		recorded_at %s NOT NULL
	);
	`, recordedAtType)

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_tasbeeh_sessions_recorded_at
	ON tasbeeh_sessions(recorded_at);
	`

	statements := []string{
		createDhikrQuery,
		createSessionsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type DhikrSeed struct {
	ID              string `json:"id"`
	Arabic          string `json:"arabic"`
	Transliteration string `json:"transliteration"`
	Translation     string `json:"translation"`
	DefaultTarget   int    `json:"default_target"`
}

// Load dhikr seed rows from a JSON file.
func LoadDhikrSeeds(jsonPath string) ([]DhikrSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed dhikr: read %q: %w", jsonPath, err)
	}

	var data []DhikrSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed dhikr: parse json: %w", err)
	}

	return data, nil
}

// CatalogSeeds converts the built-in catalog into seed rows.
func CatalogSeeds() []DhikrSeed {
	out := make([]DhikrSeed, 0, len(domain.DhikrCatalog))
	for _, d := range domain.DhikrCatalog {
		out = append(out, DhikrSeed{
			ID:              d.ID,
			Arabic:          d.Arabic,
			Transliteration: d.Transliteration,
			Translation:     d.Translation,
			DefaultTarget:   d.DefaultTarget,
		})
	}
	return out
}

// Populate the dhikr table, replacing rows with the same id.
func SeedDhikr(ctx context.Context, db *sql.DB, dialect Dialect, data []DhikrSeed) error {
	if db == nil {
		return errors.New("seed dhikr: DB is nil")
	}

	rows := make([]DhikrSeed, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return fmt.Errorf("seed dhikr: item at index %d: id cannot be empty", i+1)
		}
		if item.DefaultTarget <= 0 {
			return fmt.Errorf("seed dhikr: invalid default_target at index %d: %d", i+1, item.DefaultTarget)
		}
		item.ID = id
		rows = append(rows, item)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed dhikr: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO dhikr (
		dhikr_id,
		arabic,
		transliteration,
		translation,
		default_target
	)
	VALUES (?, ?, ?, ?, ?);
	`
	if dialect == DialectPostgres {
		query = `
		INSERT INTO dhikr (dhikr_id, arabic, transliteration, translation, default_target)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (dhikr_id) DO UPDATE
		SET arabic = EXCLUDED.arabic,
			transliteration = EXCLUDED.transliteration,
			translation = EXCLUDED.translation,
			default_target = EXCLUDED.default_target;
		`
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed dhikr: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range rows {
		if _, err := stmt.ExecContext(ctx, d.ID, d.Arabic, d.Transliteration, d.Translation, d.DefaultTarget); err != nil {
			return fmt.Errorf("seed dhikr: insert dhikr_id=%q: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed dhikr: commit tx: %w", err)
	}

	return nil
}
