// Package config loads service settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	LogLevel  string
	LogPretty bool

	DBPath      string // local SQLite file, used when DatabaseURL is empty
	DatabaseURL string // Postgres DSN
	SeedPath    string

	RedisAddr     string
	PriceCacheTTL time.Duration

	PriceFeedURL string
	PriceFeedRPS float64

	// Static price table overrides, per gram.
	Gold24kPrice float64
	Gold22kPrice float64
	Gold18kPrice float64
	SilverPrice  float64

	DefaultCurrency string
}

// LoadDotEnv reads .env into the process environment if present.
// It reports whether a file was loaded.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:      Get("PORT", "8080"),
		LogLevel:  Get("LOG_LEVEL", "info"),
		LogPretty: getBool("LOG_PRETTY", false),

		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SeedPath:    os.Getenv("SEED_PATH"),

		RedisAddr:    strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		PriceFeedURL: strings.TrimSpace(os.Getenv("PRICE_FEED_URL")),

		DefaultCurrency: Get("DEFAULT_CURRENCY", "EUR"),
	}

	var err error
	if cfg.PriceCacheTTL, err = getDuration("PRICE_CACHE_TTL", 15*time.Minute); err != nil {
		return cfg, err
	}
	if cfg.PriceFeedRPS, err = getFloat("PRICE_FEED_RPS", 2); err != nil {
		return cfg, err
	}
	if cfg.Gold24kPrice, err = getFloat("GOLD_24K_PRICE", 65); err != nil {
		return cfg, err
	}
	if cfg.Gold22kPrice, err = getFloat("GOLD_22K_PRICE", 60); err != nil {
		return cfg, err
	}
	if cfg.Gold18kPrice, err = getFloat("GOLD_18K_PRICE", 48); err != nil {
		return cfg, err
	}
	if cfg.SilverPrice, err = getFloat("SILVER_PRICE", 0.75); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, v, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("config: %s must not be negative", key)
	}
	return f, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, v, err)
	}
	return d, nil
}
