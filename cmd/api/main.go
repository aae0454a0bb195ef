package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dataguardian/internal/api"
	"dataguardian/internal/api/handlers"
	"dataguardian/internal/config"
	"dataguardian/internal/domain/services"
	"dataguardian/internal/domain/services/reputation"
	"dataguardian/internal/infrastructure/breach"
	"dataguardian/internal/infrastructure/cache"
	"dataguardian/internal/infrastructure/database"
	"dataguardian/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting DataGuardian")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize optional infrastructure. Both stores are optional; the
	// service boots and answers analysis requests without either.
	db, redisCache := initInfrastructure(ctx, cfg, log)
	defer func() {
		if db != nil {
			db.Close()
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Breach store: Postgres when a database is connected, otherwise the
	// local file dataset.
	var breachStore services.BreachStore
	if db != nil {
		breachStore = breach.NewPostgresStore(db.Pool(), log)
		log.Info().Msg("breach store backed by PostgreSQL")
	} else {
		breachStore = breach.NewFileStore(cfg.BreachDB.Path, log)
		log.Info().Str("path", cfg.BreachDB.Path).Msg("breach store backed by local dataset")
	}

	// Reputation clients
	var (
		commits  services.CommitVisibilityClient
		identity services.IdentityLinkClient
	)
	if cfg.Reputation.Enabled {
		repCfg := reputation.Config{
			GitHubBaseURL:  cfg.Reputation.GitHubBaseURL,
			KeybaseBaseURL: cfg.Reputation.KeybaseBaseURL,
			Timeout:        cfg.Reputation.Timeout,
			CacheTTL:       cfg.Reputation.CacheTTL,
		}
		commits = reputation.NewGitHubClient(repCfg, redisCache, log)
		identity = reputation.NewKeybaseClient(repCfg, redisCache, log)
		log.Info().Bool("cached", redisCache != nil).Msg("reputation lookups enabled")
	} else {
		commits = reputation.Disabled{}
		identity = reputation.Disabled{}
		log.Info().Msg("reputation lookups disabled")
	}

	// Initialize services
	normalizer := services.NewNormalizer(log)
	detector := services.NewDetector(log)
	scorer := services.NewScorer(log)
	analyzer := services.NewAnalyzer(
		normalizer, detector, scorer,
		breachStore, commits, identity,
		cfg.Reputation.Timeout, log,
	)

	// Initialize handlers
	deps := handlers.Dependencies{
		Analyzer: analyzer,
		Cache:    redisCache,
		DB:       db,
		Logger:   log,
		Version:  cfg.App.Version,
	}
	h := handlers.NewHandlers(deps)

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, log)
	httpHandler := router.Setup()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// initInfrastructure connects the optional database and cache. Failures
// are logged and the service continues degraded.
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.PostgresDB, *cache.RedisCache) {
	var db *database.PostgresDB
	if cfg.Database.Enabled {
		var err error
		db, err = database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without database")
			db = nil
		}
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		var err error
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
			redisCache = nil
		}
	}

	return db, redisCache
}
