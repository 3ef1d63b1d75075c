package config

// 默认值常量
const (
	defaultAppEnv          = "dev"
	defaultAppLogLevel     = "info"
	defaultAppHTTPAddr     = ":9991"
	defaultRESTBaseURL     = "https://fapi.binance.com"
	defaultTimeoutSeconds  = 10
	defaultProfitTargetUSD = 2.0
	defaultTickSeconds     = 2
	defaultNotionalUSD     = 10
	defaultLeverage        = 50
	defaultFillAttempts    = 10
	defaultFillIntervalMS  = 500
	defaultStaleGraceSecs  = 30
	defaultStorePath       = "data/bfuture.db"
)

var defaultSymbols = []string{"BTCUSDT", "ETHUSDT", "MUBARAKUSDT", "BANANAS31USDT"}

// applyDefaults 为所有未设置的字段填充默认值。
func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = defaultAppEnv
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = defaultAppLogLevel
	}
	if c.App.HTTPAddr == "" {
		c.App.HTTPAddr = defaultAppHTTPAddr
	}
	if c.Binance.RESTBaseURL == "" {
		c.Binance.RESTBaseURL = defaultRESTBaseURL
	}
	if c.Binance.TimeoutSeconds <= 0 {
		c.Binance.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Engine.ProfitTargetUSD <= 0 {
		c.Engine.ProfitTargetUSD = defaultProfitTargetUSD
	}
	if c.Engine.TickIntervalSeconds <= 0 {
		c.Engine.TickIntervalSeconds = defaultTickSeconds
	}
	if c.Engine.TargetNotionalUSD <= 0 {
		c.Engine.TargetNotionalUSD = defaultNotionalUSD
	}
	if c.Engine.Leverage <= 0 {
		c.Engine.Leverage = defaultLeverage
	}
	if c.Engine.FillPollAttempts <= 0 {
		c.Engine.FillPollAttempts = defaultFillAttempts
	}
	if c.Engine.FillPollIntervalMS <= 0 {
		c.Engine.FillPollIntervalMS = defaultFillIntervalMS
	}
	if c.Engine.StaleTradeGraceSecs <= 0 {
		c.Engine.StaleTradeGraceSecs = defaultStaleGraceSecs
	}
	if len(c.Engine.Symbols) == 0 {
		c.Engine.Symbols = append([]string(nil), defaultSymbols...)
	}
	if c.Store.Path == "" {
		c.Store.Path = defaultStorePath
	}
}
