package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate 对配置进行基础校验。
func validate(c *Config) error {
	if err := c.Binance.validate(); err != nil {
		return err
	}
	if err := c.Engine.validate(); err != nil {
		return err
	}
	if err := c.Notify.validate(); err != nil {
		return err
	}
	return nil
}

func (b *BinanceConfig) validate() error {
	raw := strings.TrimSpace(b.RESTBaseURL)
	if raw == "" {
		return fmt.Errorf("binance.rest_base_url cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("binance.rest_base_url is not a valid URL: %s", raw)
	}
	// One key without the other is always a mistake; both empty is degraded
	// mode (public endpoints only) and allowed.
	if (b.APIKey == "") != (b.APISecret == "") {
		return fmt.Errorf("binance.api_key and binance.api_secret must be set together")
	}
	return nil
}

func (e *EngineConfig) validate() error {
	if e.ProfitTargetUSD <= 0 {
		return fmt.Errorf("engine.profit_target_usd must be > 0")
	}
	if e.Leverage < 1 || e.Leverage > 125 {
		return fmt.Errorf("engine.leverage must be within [1, 125]")
	}
	for _, s := range e.Symbols {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("engine.symbols contains an empty entry")
		}
	}
	return nil
}

func (n *NotifyConfig) validate() error {
	if n.Telegram.Enabled {
		if strings.TrimSpace(n.Telegram.BotToken) == "" || strings.TrimSpace(n.Telegram.ChatID) == "" {
			return fmt.Errorf("notify.telegram requires bot_token and chat_id when enabled")
		}
	}
	return nil
}
