package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "PRICE_CACHE_TTL", "GOLD_24K_PRICE", "SILVER_PRICE", "DATABASE_URL", "DEFAULT_CURRENCY"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.PriceCacheTTL)
	assert.Equal(t, 65.0, cfg.Gold24kPrice)
	assert.Equal(t, 0.75, cfg.SilverPrice)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PRICE_CACHE_TTL", "1h")
	t.Setenv("SILVER_PRICE", "0.9")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, time.Hour, cfg.PriceCacheTTL)
	assert.Equal(t, 0.9, cfg.SilverPrice)
	assert.True(t, cfg.LogPretty)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("GOLD_22K_PRICE", "lots")
	_, err := Load()
	assert.ErrorContains(t, err, "GOLD_22K_PRICE")

	t.Setenv("GOLD_22K_PRICE", "-3")
	_, err = Load()
	assert.ErrorContains(t, err, "must not be negative")

	t.Setenv("GOLD_22K_PRICE", "")
	t.Setenv("PRICE_CACHE_TTL", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "PRICE_CACHE_TTL")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("QZ_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("QZ_TEST_KEY", "")
	os.Unsetenv("QZ_TEST_KEY")

	assert.True(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", Get("QZ_TEST_KEY", "fallback"))

	assert.False(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
