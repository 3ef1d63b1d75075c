// Package market provides unauthenticated market data. Prices come from the
// public futures ticker; no credentials are involved.
package market

import "context"

// Source yields the current price for a symbol. A failed lookup is an error,
// never a zero price: zero is not a meaningful sentinel for any listed
// contract and callers must be able to tell "unknown" apart from a quote.
type Source interface {
	LastPrice(ctx context.Context, symbol string) (float64, error)
}
