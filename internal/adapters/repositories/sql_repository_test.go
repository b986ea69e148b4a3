package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/platform/db"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openPostgresTestDB connects to TEST_DATABASE_URL and isolates the test in a
// throwaway schema that is dropped on cleanup.
func openPostgresTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_DATABASE_URL"))
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(dsn)
	require.NoError(t, err)
	// search_path is per connection.
	conn.SetMaxOpenConns(1)

	ctx := context.Background()
	schema := "qz_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = conn.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA %s", schema))
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", schema))
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = conn.ExecContext(context.Background(), fmt.Sprintf("DROP SCHEMA %s CASCADE", schema))
		conn.Close()
	})

	require.NoError(t, InitSchema(ctx, conn, DialectPostgres))
	return conn
}

func TestSQLSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLSessionRepository(openPostgresTestDB(t))

	base := time.Date(2026, 1, 1, 8, 0, 0, 123456000, time.UTC)
	ids := make([]uuid.UUID, 0, 4)
	for i := 0; i < 4; i++ {
		s := domain.TasbeehSession{
			ID:         uuid.New(),
			DhikrID:    "subhanallah",
			Count:      i,
			Target:     33,
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
		}
		ids = append(ids, s.ID)
		require.NoError(t, repo.SaveSession(ctx, s))
	}

	got, err := repo.ListSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, ids[3], got[0].ID)
	assert.Equal(t, 33, got[0].Target)
	assert.True(t, got[0].RecordedAt.Equal(base.Add(3*time.Minute)))
	assert.Equal(t, time.UTC, got[0].RecordedAt.Location())

	require.NoError(t, repo.PruneSessions(ctx, 2))

	got, err = repo.ListSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ids[3], got[0].ID)
	assert.Equal(t, ids[2], got[1].ID)
}

func TestSQLDhikrRepository(t *testing.T) {
	ctx := context.Background()
	conn := openPostgresTestDB(t)

	require.NoError(t, SeedDhikr(ctx, conn, DialectPostgres, CatalogSeeds()))
	require.NoError(t, SeedDhikr(ctx, conn, DialectPostgres, []DhikrSeed{{ID: "istighfar", DefaultTarget: 70}}))

	repo := NewSQLDhikrRepository(conn)

	list, err := repo.ListDhikr(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(domain.DhikrCatalog))

	d, ok, err := repo.GetDhikr(ctx, "istighfar")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 70, d.DefaultTarget)

	_, ok, err = repo.GetDhikr(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
