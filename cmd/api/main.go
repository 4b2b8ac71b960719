// Package main is the entry point for the SF Experiences API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/sf-experiences/backend/internal/catalog"
	"github.com/pkordes/sf-experiences/backend/internal/config"
	"github.com/pkordes/sf-experiences/backend/internal/handler"
	"github.com/pkordes/sf-experiences/backend/internal/middleware"
	"github.com/pkordes/sf-experiences/backend/internal/repo"
	"github.com/pkordes/sf-experiences/backend/internal/service"
	"github.com/pkordes/sf-experiences/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before ours is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// --- Catalog ----------------------------------------------------------
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", "version", cat.Version(), "experiences", cat.Len())

	// --- Persistence ------------------------------------------------------
	stateRepo, closeRepo, err := openStateRepo(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	store, err := service.NewStore(ctx, stateRepo, logger)
	if err != nil {
		return fmt.Errorf("load planner state: %w", err)
	}

	// --- Services ---------------------------------------------------------
	search := service.NewSearchService(cat, store)
	srv := handler.NewServer(
		search,
		service.NewItineraryService(store, cat),
		service.NewFavoriteService(store, cat),
		service.NewExportService(store),
		service.NewMapService(search, cfg.MapboxToken),
		cfg.PublicBaseURL,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body limit → rate limit.
	// RealIP must run before the rate limiter so clients are keyed by their real address.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", "addr", httpServer.Addr, "backend", cfg.StoreBackend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	// Graceful shutdown: on signal, give in-flight requests up to 15 seconds.
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStateRepo builds the configured persistence backend. The returned
// close function releases its connections.
func openStateRepo(ctx context.Context, cfg config.Config, logger *slog.Logger) (repo.StateRepo, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendFile:
		logger.Info("using file state backend", "path", cfg.StateFile)
		return repo.NewFileStateRepo(cfg.StateFile), noop, nil

	case config.BackendPostgres:
		// pgxpool manages a pool of Postgres connections.
		// New() does not open connections immediately; the ping does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := migrate(ctx, cfg.DatabaseURL, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("database connection established")
		return repo.NewPostgresStateRepo(pool, cfg.StoreNamespace), pool.Close, nil

	case config.BackendRedis:
		rdb, err := repo.NewRedisClient(ctx, repo.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("redis connection established", "addr", cfg.RedisAddr)
		return repo.NewRedisStateRepo(rdb, cfg.StoreNamespace), func() { _ = rdb.Close() }, nil

	default:
		logger.Warn("using in-memory state backend; planner state is lost on restart")
		return repo.NewMemoryStateRepo(), noop, nil
	}
}

// migrate applies pending goose migrations. goose needs database/sql, not a
// pgx pool, so it gets a short-lived connection of its own.
func migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations applied", "count", len(results))
	return nil
}
