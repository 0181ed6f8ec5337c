package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/local-library/catalog"
	"github.com/marcelsud/local-library/catalog/memory"
	"github.com/marcelsud/local-library/catalog/postgres"
	"github.com/marcelsud/local-library/config"
	"github.com/marcelsud/local-library/dashboard"
	"github.com/marcelsud/local-library/internal/http/chi"
	"github.com/marcelsud/local-library/metrics"
	"github.com/marcelsud/local-library/renewal"
	"github.com/marcelsud/local-library/session"
	sessionredis "github.com/marcelsud/local-library/session/redis"
	"github.com/rs/zerolog"
)

const TIMEOUT = 30 * time.Second

/*
 * main wires the packages together: config, storage, services and the HTTP layer.
 * Imports only go downwards: cmd imports the domain packages, which import storage.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	logger := newLogger(cfg.GetLogLevel())
	if err := cfg.ValidateAPI(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("opening catalog store")
		return
	}
	defer repo.Close(context.Background())
	logger.Info().Str("driver", cfg.GetDBDriver()).Msg("catalog store ready")

	visits, closeVisits, err := openSessionStore(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("opening session store")
		return
	}
	defer closeVisits()

	exporter, err := metrics.NewOTelExporter(metrics.NewCatalogCollector(repo))
	if err != nil {
		logger.Error().Err(err).Msg("creating metrics exporter")
		return
	}
	defer exporter.Shutdown(context.Background())

	r := chi.Handlers(ctx, chi.Services{
		Catalog:   catalog.NewService(repo),
		Renewal:   renewal.NewService(repo, time.Now),
		Dashboard: dashboard.NewService(repo, visits),
	}, chi.Options{
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.GetSessionTTL(),
		LogLevel:   cfg.GetLogLevel(),
		Metrics:    exporter.ServeHTTP(),
	})
	http.Handle("/", r)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.GetPort(),
		Handler:      http.DefaultServeMux,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	logger.Info().Str("port", cfg.GetPort()).Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("serving")
		return
	}
	err = <-errShutdown
	if err != nil {
		logger.Error().Err(err).Msg("shutting down")
		return
	}
	logger.Info().Msg("server stopped")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Str("service", "local-library").Logger()
}

func openRepository(ctx context.Context, cfg *config.Config) (catalog.Repository, error) {
	if cfg.GetDBDriver() == "memory" {
		return memory.NewRepository(), nil
	}
	repo, err := postgres.NewRepositoryWithPoolConfig(
		cfg.PostgresConnectionString(),
		cfg.GetPostgresMaxOpenConns(),
		cfg.GetPostgresMaxIdleConns(),
		cfg.GetPostgresConnMaxLifeMinutes(),
	)
	if err != nil {
		return nil, err
	}
	if err := repo.CreateTables(ctx); err != nil {
		repo.Close(ctx)
		return nil, err
	}
	return repo, nil
}

// openSessionStore uses Redis when REDIS_ADDR is set, a process local store otherwise
func openSessionStore(cfg *config.Config) (session.Store, func() error, error) {
	if cfg.RedisAddr == "" {
		return session.NewMemoryStore(), func() error { return nil }, nil
	}
	store, err := sessionredis.NewStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.GetSessionTTL())
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
