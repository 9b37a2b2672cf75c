package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"shortlink-be/internal/cache"
	"shortlink-be/internal/config"
	"shortlink-be/internal/database"
	"shortlink-be/internal/idgen"
	"shortlink-be/internal/logger"
	"shortlink-be/internal/repository"
	"shortlink-be/internal/router"
	"shortlink-be/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const startupTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	if err := logger.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	repo, cacheClient, closeStore, err := openStore(startCtx, cfg)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Failed to open store")
	}
	defer closeStore()

	linkService := service.NewLinkService(repo, idgen.NewRandomGenerator(), cacheClient, service.Options{
		MaxAttempts:  cfg.ShortenMaxAttempts,
		StoreTimeout: cfg.StoreTimeout,
		CacheTTL:     cfg.CacheTTL,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(cfg, linkService),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Str("backend", cfg.StoreBackend).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("Server stopped with error")
		return
	}
	logger.Info().Msg("Server exited")
}

// openStore connects the configured backend. The returned func releases every connection
// it opened.
func openStore(ctx context.Context, cfg *config.Config) (repository.ShortLinkRepository, cache.Cache, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		// No lookup cache in front of the Redis store.
		return repository.NewRedisShortLinkRepository(client), nil, func() { closeRedis(client) }, nil

	default:
		db, err := database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			closeDB(db)
			return nil, nil, nil, err
		}

		repo := repository.NewPostgresShortLinkRepository(db)
		if cfg.RedisURL == "" {
			logger.Info().Msg("REDIS_URL not set, running without lookup cache")
			return repo, nil, func() { closeDB(db) }, nil
		}

		// Cache is optional - continue if Redis is unavailable
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Redis, continuing without cache")
			return repo, nil, func() { closeDB(db) }, nil
		}

		return repo, cache.NewRedisCache(client, "shortlink:cache:"), func() {
			closeRedis(client)
			closeDB(db)
		}, nil
	}
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close database")
	}
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close Redis client")
	}
}
