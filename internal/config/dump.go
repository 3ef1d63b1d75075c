package config

import (
	"gopkg.in/yaml.v3"
)

// Dump renders the effective configuration as YAML for the startup summary.
// Credentials are masked.
func (c *Config) Dump() string {
	if c == nil {
		return ""
	}
	redacted := *c
	redacted.Binance.APIKey = mask(redacted.Binance.APIKey)
	redacted.Binance.APISecret = mask(redacted.Binance.APISecret)
	redacted.Notify.Telegram.BotToken = mask(redacted.Notify.Telegram.BotToken)
	out, err := yaml.Marshal(&redacted)
	if err != nil {
		return ""
	}
	return string(out)
}

func mask(s string) string {
	if len(s) <= 4 {
		if s == "" {
			return ""
		}
		return "****"
	}
	return s[:4] + "****"
}
