// Package server wires configuration, storage, services and the HTTP API
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/culinaryshare/internal/logging"
	"github.com/dmitrijs2005/culinaryshare/internal/server/config"
	"github.com/dmitrijs2005/culinaryshare/internal/server/httpserver"
	"github.com/dmitrijs2005/culinaryshare/internal/server/metrics"
	"github.com/dmitrijs2005/culinaryshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/culinaryshare/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	server      *httpserver.Server
}

// openRepositories is a seam for tests.
var openRepositories = repomanager.Open

// NewApp connects the configured store, applies migrations and builds the
// HTTP server.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, os.Stdout)
	if err != nil {
		return nil, err
	}

	rm, err := openRepositories(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(rm, c)
	rs := services.NewRecipeService(rm)

	srv := httpserver.New(httpserver.Options{
		Address:         c.EndpointAddrHTTP,
		AllowedOrigins:  c.CORSAllowedOrigins,
		ShutdownTimeout: c.ShutdownTimeout,
	}, logger, us, rs, metrics.New())

	logger.Info(ctx, "storage ready", "driver", c.StorageDriver)

	return &App{config: c, logger: logger, repomanager: rm, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "HTTP server stopped", "error", err)
	}

	if cerr := app.repomanager.Close(context.Background()); cerr != nil {
		app.logger.Error(ctx, "closing storage", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
