package main

import (
	"context"
	"database/sql"
	"os"
	"qibla-zakat-service/internal/adapters/repositories"
	"qibla-zakat-service/internal/config"
	"qibla-zakat-service/internal/platform/db"
	"qibla-zakat-service/internal/platform/logger"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// dbtool prepares a Postgres database: it creates the schema and seeds the dhikr catalog.
func main() {
	loadedEnv := config.LoadDotEnv()

	log := logger.New(logger.Config{
		Level:  config.Get("LOG_LEVEL", "info"),
		Pretty: true,
	})
	if !loadedEnv {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := initAndSeed(ctx, log, conn, os.Getenv("SEED_PATH")); err != nil {
		log.Fatal().Err(err).Msg("dbtool failed")
	}
}

func initAndSeed(ctx context.Context, log zerolog.Logger, conn *sql.DB, seedPath string) error {
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn, repositories.DialectPostgres); err != nil {
		return err
	}
	log.Info().Msg("schema ready")

	seeds := repositories.CatalogSeeds()
	if seedPath != "" {
		loaded, err := repositories.LoadDhikrSeeds(seedPath)
		if err != nil {
			return err
		}
		seeds = loaded
	}

	log.Info().Int("rows", len(seeds)).Msg("seeding dhikr catalog")
	if err := repositories.SeedDhikr(ctx, conn, repositories.DialectPostgres, seeds); err != nil {
		return err
	}
	log.Info().Msg("seeding complete")

	return nil
}
