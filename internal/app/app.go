// Package app wires configuration, gateway, engine and transport together.
package app

import (
	"context"
	"fmt"

	"bfuture/internal/config"
	"bfuture/internal/engine"
	"bfuture/internal/logger"
	livehttp "bfuture/internal/transport/http/live"

	"golang.org/x/sync/errgroup"
)

// App drives the process: HTTP transport, config watcher and engine
// lifecycle.
type App struct {
	cfg      *config.Config
	engine   *engine.Engine
	liveHTTP *livehttp.Server

	// ConfigPath enables hot reload of engine tunables when set.
	ConfigPath string
}

// NewApp builds the application from configuration (does not start it).
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(context.Background(), cfg)
}

// Run starts the transport and, when configured, the monitoring loop. It
// blocks until ctx is cancelled or a component fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	logger.Infof("effective configuration:")
	logger.InfoBlock(a.cfg.Dump())

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := a.liveHTTP.Start(ctx); err != nil {
			return fmt.Errorf("live http server error: %w", err)
		}
		return nil
	})

	if a.ConfigPath != "" {
		watcher := config.NewWatcher(a.ConfigPath, a.engine.UpdateTunables)
		group.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	if a.cfg.Engine.AutoStart {
		if err := a.engine.Start(); err != nil {
			return err
		}
	}

	group.Go(func() error {
		<-ctx.Done()
		if a.engine.Running() {
			if err := a.engine.Stop(); err != nil {
				logger.Warnf("stopping engine on shutdown: %v", err)
			}
		}
		return nil
	})

	return group.Wait()
}

// Engine exposes the engine instance (for testing harnesses).
func (a *App) Engine() *engine.Engine {
	if a == nil {
		return nil
	}
	return a.engine
}
