// Package server wires the catalog together: configuration, logging,
// storage, services and the HTTP and gRPC listeners, with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ktpm/catalog/internal/logging"
	"github.com/ktpm/catalog/internal/server/auth"
	"github.com/ktpm/catalog/internal/server/config"
	gs "github.com/ktpm/catalog/internal/server/grpc"
	"github.com/ktpm/catalog/internal/server/httpapi"
	"github.com/ktpm/catalog/internal/server/repositories/repomanager"
	"github.com/ktpm/catalog/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	deps        httpapi.Deps
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if c.SecretKey == config.DefaultSecretKey {
		logger.Warn(ctx, "using the development secret key; set -s or secret_key in production")
	}

	tokens, err := auth.NewTokenService([]byte(c.SecretKey), c.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	m, err := newRepositoryManager(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	public := []string{c.PublicPrefix, "/healthz", "/metrics"}

	return &App{
		config:      c,
		logger:      logger,
		repomanager: m,
		tokens:      tokens,
		deps: httpapi.Deps{
			Auth:    services.NewAuthService(m, auth.NewBcryptHasher(c.BcryptCost), tokens, logger),
			Catalog: services.NewProductService(m, logger),
			Tokens:  tokens,
			Cookie:  httpapi.CookieConfig{Name: c.CookieName, Secure: c.CookieSecure, TTL: tokens.TTL()},
			Public:  public,
			Metrics: httpapi.NewMetrics(registry),
			Logger:  logger,
		},
	}, nil
}

func newRepositoryManager(ctx context.Context, c *config.Config, logger logging.Logger) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		logger.Info(ctx, "no database DSN configured, using in-memory stores")
		return repomanager.NewInMemoryRepositoryManager(), nil
	}

	m, err := repomanager.NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return m, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.HTTPAddr, httpapi.NewRouter(app.deps), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.tokens, app.config.CookieName)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server failed", "error", err)
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.GRPCAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}

// NewLogger builds the process logger for the configured level.
func NewLogger(c *config.Config) logging.Logger {
	return logging.NewJSON(os.Stdout, c.LogLevel)
}
