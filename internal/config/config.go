package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load reads the YAML config at path, applies defaults, resolves credential
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides lets credentials come from the environment so secrets can
// stay out of the config file.
func (c *Config) applyEnvOverrides() {
	if c.Binance.APIKey == "" {
		c.Binance.APIKey = strings.TrimSpace(os.Getenv("BINANCE_API_KEY"))
	}
	if c.Binance.APISecret == "" {
		c.Binance.APISecret = strings.TrimSpace(os.Getenv("BINANCE_API_SECRET"))
	}
}
