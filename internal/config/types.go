package config

import "time"

// Config 是 bfuture 的主配置载体。
type Config struct {
	App     AppConfig     `toml:"app"`
	Binance BinanceConfig `toml:"binance"`
	Engine  EngineConfig  `toml:"engine"`
	Notify  NotifyConfig  `toml:"notify"`
	Store   StoreConfig   `toml:"store"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
}

// BinanceConfig describes the exchange endpoint and API credentials.
// Credentials left empty here may come from BINANCE_API_KEY /
// BINANCE_API_SECRET environment variables.
type BinanceConfig struct {
	APIKey         string `toml:"api_key"`
	APISecret      string `toml:"api_secret"`
	RESTBaseURL    string `toml:"rest_base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// EngineConfig controls the scalping engine. Profit target and tick interval
// are hot-reloadable via the config watcher.
type EngineConfig struct {
	ProfitTargetUSD     float64  `toml:"profit_target_usd"`
	TickIntervalSeconds int      `toml:"tick_interval_seconds"`
	TargetNotionalUSD   float64  `toml:"target_notional_usd"`
	Leverage            int      `toml:"leverage"`
	FillPollAttempts    int      `toml:"fill_poll_attempts"`
	FillPollIntervalMS  int      `toml:"fill_poll_interval_ms"`
	Symbols             []string `toml:"symbols"`
	StaleTradeGraceSecs int      `toml:"stale_trade_grace_seconds"`
	AutoStart           bool     `toml:"auto_start"`
}

func (e EngineConfig) TickInterval() time.Duration {
	return time.Duration(e.TickIntervalSeconds) * time.Second
}

func (e EngineConfig) FillPollInterval() time.Duration {
	return time.Duration(e.FillPollIntervalMS) * time.Millisecond
}

func (e EngineConfig) StaleTradeGrace() time.Duration {
	return time.Duration(e.StaleTradeGraceSecs) * time.Second
}

type NotifyConfig struct {
	Telegram TelegramConfig `toml:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `toml:"enabled"`
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
}

// StoreConfig points at the sqlite trade journal.
type StoreConfig struct {
	Path string `toml:"path"`
}
