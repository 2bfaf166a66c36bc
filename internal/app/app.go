// Package app wires the loaded model, the tip stack and the HTTP
// server into one runnable unit.
package app

import (
	"context"
	"fmt"

	"calmcast/internal/config"
	"calmcast/internal/logger"
	"calmcast/internal/tips"
	httpapi "calmcast/internal/transport/http"

	"golang.org/x/sync/errgroup"
)

// App holds the built service graph. Everything inside is constructed
// once at startup and read-only afterward.
type App struct {
	cfg    *config.Config
	server *httpapi.Server
	bank   *tips.Registry
}

// NewApp builds the application from config without starting it. A
// missing or corrupt model bundle fails here, before any listener
// opens.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(cfg)
}

// Run serves until ctx is cancelled. The bank watcher dies with the
// server.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	logger.Infof("calmcast listening on %s", a.server.Addr())

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := a.server.Start(ctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		if a.bank != nil {
			_ = a.bank.Close()
		}
		return nil
	})
	return group.Wait()
}

// Server exposes the HTTP server, mainly for test harnesses.
func (a *App) Server() *httpapi.Server {
	if a == nil {
		return nil
	}
	return a.server
}
