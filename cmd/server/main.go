package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"qibla-zakat-service/internal/adapters/prices"
	"qibla-zakat-service/internal/adapters/repositories"
	"qibla-zakat-service/internal/api"
	"qibla-zakat-service/internal/config"
	"qibla-zakat-service/internal/domain"
	"qibla-zakat-service/internal/platform/db"
	"qibla-zakat-service/internal/platform/logger"
	"qibla-zakat-service/internal/ports"
	"qibla-zakat-service/internal/services"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, price sources, Redis) behind ports and starts the HTTP server.
func main() {
	loadedEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if !loadedEnv {
		log.Info().Msg("no .env file found (using environment variables)")
	}

	defaultCurrency, err := domain.ParseCurrency(cfg.DefaultCurrency)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DEFAULT_CURRENCY")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer st.conn.Close()

	priceSource, cached, closeCache := buildPriceProvider(cfg, log)
	defer closeCache()

	if cached {
		go func() {
			warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			tables, err := prices.WarmAll(warmCtx, priceSource, domain.SupportedCurrencies)
			if err != nil {
				log.Warn().Err(err).Msg("price warm-up failed")
				return
			}
			log.Info().Int("currencies", len(tables)).Msg("price cache warmed")
		}()
	}

	router := api.NewRouter(api.Deps{
		Log:             log,
		Prices:          priceSource,
		Tasbeeh:         services.NewTasbeehService(st.sessions, st.dhikr, ports.SystemClock{}),
		DefaultCurrency: defaultCurrency,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// ListenAndServe returns as soon as Shutdown starts; wait on done so
	// in-flight requests drain before the store and cache close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", srv.Addr).Str("currency", defaultCurrency.Code).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	<-done
	log.Info().Msg("server stopped")
}

type store struct {
	conn     *sql.DB
	sessions ports.SessionRepository
	dhikr    ports.DhikrRepository
}

// openStore prefers Postgres when DATABASE_URL is set and falls back to the local SQLite file.
// The schema is created and the dhikr catalog seeded on every start.
func openStore(ctx context.Context, cfg config.Config) (store, error) {
	var (
		st      store
		dialect repositories.Dialect
		err     error
	)

	if cfg.DatabaseURL != "" {
		dialect = repositories.DialectPostgres
		if st.conn, err = db.Open(cfg.DatabaseURL); err != nil {
			return store{}, err
		}
		st.sessions = repositories.NewSQLSessionRepository(st.conn)
		st.dhikr = repositories.NewSQLDhikrRepository(st.conn)
	} else {
		dialect = repositories.DialectSqlite
		if st.conn, err = db.OpenSqlite(cfg.DBPath); err != nil {
			return store{}, err
		}
		st.sessions = repositories.NewSqliteSessionRepository(st.conn)
		st.dhikr = repositories.NewSqliteDhikrRepository(st.conn)
	}

	if err := initAndSeed(ctx, st.conn, dialect, cfg.SeedPath); err != nil {
		st.conn.Close()
		return store{}, err
	}

	return st, nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect repositories.Dialect, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	seeds := repositories.CatalogSeeds()
	if seedPath != "" {
		loaded, err := repositories.LoadDhikrSeeds(seedPath)
		if err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		seeds = loaded
	}

	if err := repositories.SeedDhikr(ctx, conn, dialect, seeds); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// buildPriceProvider layers the configured sources. The Redis cache only ever
// holds live feed tables; the static table is the fallback behind both, so a
// feed outage is never cached. cached reports whether Redis is in use.
func buildPriceProvider(cfg config.Config, log zerolog.Logger) (_ ports.PriceProvider, cached bool, closeFn func()) {
	static := prices.NewStaticPriceProvider(domain.PriceTable{
		GoldPerGram: map[domain.Karat]float64{
			domain.Karat24: cfg.Gold24kPrice,
			domain.Karat22: cfg.Gold22kPrice,
			domain.Karat18: cfg.Gold18kPrice,
		},
		SilverPerGram: cfg.SilverPrice,
		Currency:      domain.DefaultCurrency,
	})

	if cfg.PriceFeedURL == "" {
		if cfg.RedisAddr != "" {
			log.Warn().Msg("REDIS_ADDR ignored without PRICE_FEED_URL")
		}
		return static, false, func() {}
	}

	feed, err := prices.NewHTTPPriceProvider(cfg.PriceFeedURL, cfg.PriceFeedRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid PRICE_FEED_URL")
	}
	log.Info().Str("url", cfg.PriceFeedURL).Msg("price feed enabled")

	var live ports.PriceProvider = feed
	closeFn = func() {}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		live = &prices.CachedPriceProvider{
			Source: feed,
			Cache:  prices.NewRedisPriceCache(client, cfg.PriceCacheTTL),
			Log:    log,
		}
		cached = true
		closeFn = func() { client.Close() }
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.PriceCacheTTL).Msg("price cache enabled")
	}

	return &prices.FallbackPriceProvider{Primary: live, Fallback: static, Log: log}, cached, closeFn
}
