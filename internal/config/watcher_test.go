package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherPushesReloadedEngineConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  profit_target_usd: 2.0\n"), 0o644))

	var mu sync.Mutex
	var got []EngineConfig
	w := NewWatcher(path, func(cfg EngineConfig) {
		mu.Lock()
		got = append(got, cfg)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	// Give the directory watch a moment to attach before rewriting.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  profit_target_usd: 3.5\n"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) >= 1 && got[len(got)-1].ProfitTargetUSD == 3.5
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on cancellation")
	}
}

func TestWatcherIgnoresInvalidReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  profit_target_usd: 2.0\n"), 0o644))

	var mu sync.Mutex
	var calls int
	w := NewWatcher(path, func(EngineConfig) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	// Validation failure: leverage out of range. The callback must not fire.
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  leverage: 999\n"), 0o644))
	time.Sleep(watchDebounce + 500*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestWatcherWithoutCallbackReturns(t *testing.T) {
	w := NewWatcher("anywhere.yaml", nil)
	assert.NoError(t, w.Run(context.Background()))
}

func TestDumpMasksCredentials(t *testing.T) {
	cfg := &Config{}
	cfg.Binance.APIKey = "abcdef123456"
	cfg.Binance.APISecret = "k"
	cfg.Notify.Telegram.BotToken = "123456:token"

	out := cfg.Dump()
	assert.Contains(t, out, "abcd****")
	assert.Contains(t, out, "****")
	assert.NotContains(t, out, "abcdef123456")
	assert.NotContains(t, out, "123456:token")
}
