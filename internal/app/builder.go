package app

import (
	"context"
	"fmt"
	"time"

	"bfuture/internal/config"
	"bfuture/internal/engine"
	"bfuture/internal/gateway/binance"
	"bfuture/internal/gateway/notifier"
	"bfuture/internal/logger"
	"bfuture/internal/market"
	"bfuture/internal/store/sqlite"
	livehttp "bfuture/internal/transport/http/live"
)

// AppBuilder assembles the application from configuration.
type AppBuilder struct {
	cfg *config.Config
}

func NewAppBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	cfg := b.cfg
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}

	creds := binance.Credentials{APIKey: cfg.Binance.APIKey, APISecret: cfg.Binance.APISecret}
	gw, err := binance.NewClient(binance.Config{
		RESTBaseURL: cfg.Binance.RESTBaseURL,
		Timeout:     time.Duration(cfg.Binance.TimeoutSeconds) * time.Second,
		Credentials: creds,
	})
	if err != nil {
		return nil, fmt.Errorf("building binance gateway failed: %w", err)
	}
	if !gw.HasCredentials() {
		logger.Warnf("no API credentials configured: engine runs degraded, authenticated operations will be refused")
	}

	prices := market.NewBinanceSource(market.Config{
		RESTBaseURL: cfg.Binance.RESTBaseURL,
		HTTPTimeout: time.Duration(cfg.Binance.TimeoutSeconds) * time.Second,
	})

	var sink notifier.TextNotifier
	if cfg.Notify.Telegram.Enabled {
		sink = notifier.NewTelegram(cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.ChatID)
	}
	dispatcher := notifier.NewDispatcher(sink)

	journal, err := sqlite.NewStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening trade journal failed: %w", err)
	}

	eng := engine.New(cfg.Engine, gw, gw, prices, dispatcher, journal)

	srv, err := livehttp.NewServer(livehttp.ServerConfig{
		Addr:   cfg.App.HTTPAddr,
		Engine: eng,
		Events: journal,
	})
	if err != nil {
		return nil, fmt.Errorf("building live http server failed: %w", err)
	}

	return &App{
		cfg:      cfg,
		engine:   eng,
		liveHTTP: srv,
	}, nil
}
