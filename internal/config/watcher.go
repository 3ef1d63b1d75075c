package config

import (
	"context"
	"path/filepath"
	"time"

	"bfuture/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// debounce window: editors fire several events per save.
const watchDebounce = 500 * time.Millisecond

// Watcher reloads the config file on change and pushes the refreshed engine
// section to a callback. Only engine tunables are hot-swappable; everything
// else requires a restart.
type Watcher struct {
	path     string
	onEngine func(EngineConfig)
}

func NewWatcher(path string, onEngine func(EngineConfig)) *Watcher {
	return &Watcher{path: path, onEngine: onEngine}
}

// Run blocks until ctx is cancelled. Watches the parent directory because
// many editors replace the file on save, which invalidates a file watch.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.onEngine == nil {
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	target := filepath.Clean(w.path)
	var pending *time.Timer
	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("config watcher error: %v", err)
		case <-fire:
			cfg, err := Load(w.path)
			if err != nil {
				logger.Warnf("config reload skipped: %v", err)
				continue
			}
			logger.Infof("config reloaded: profit_target_usd=%.2f tick_interval=%s",
				cfg.Engine.ProfitTargetUSD, cfg.Engine.TickInterval())
			w.onEngine(cfg.Engine)
		}
	}
}
