package market

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2/futures"
)

// BinanceSource implements Source on top of the go-binance futures SDK.
// Only public endpoints are used here.
type BinanceSource struct {
	client *futures.Client
}

// Config for the public market data source.
type Config struct {
	RESTBaseURL string
	HTTPTimeout time.Duration
}

func NewBinanceSource(cfg Config) *BinanceSource {
	client := futures.NewClient("", "")
	if base := strings.TrimSpace(cfg.RESTBaseURL); base != "" {
		client.BaseURL = base
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client.HTTPClient = &http.Client{Timeout: timeout}
	return &BinanceSource{client: client}
}

// LastPrice fetches the current ticker price for symbol.
func (s *BinanceSource) LastPrice(ctx context.Context, symbol string) (float64, error) {
	prices, err := s.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching %s price failed: %w", symbol, err)
	}
	for _, p := range prices {
		if p.Symbol != symbol {
			continue
		}
		value, err := strconv.ParseFloat(p.Price, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %s price %q failed: %w", symbol, p.Price, err)
		}
		if value <= 0 {
			return 0, fmt.Errorf("exchange returned non-positive price %v for %s", value, symbol)
		}
		return value, nil
	}
	return 0, fmt.Errorf("no ticker price returned for %s", symbol)
}
