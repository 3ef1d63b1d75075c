package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// quantityPrecision is the base-asset decimal precision used when rounding
// order quantities. Symbols not listed trade in whole units.
var quantityPrecision = map[string]int32{
	"BTCUSDT": 4,
	"ETHUSDT": 3,
}

// Quantity converts a target notional (quote currency, pre-leverage) at the
// given price into a rounded base-asset quantity, serialized for the order
// parameter. e.g. $10 of BTCUSDT at 50000 → "0.0002".
func Quantity(symbol string, price, notionalUSD float64) (string, error) {
	if price <= 0 {
		return "", fmt.Errorf("invalid price %v for %s", price, symbol)
	}
	if notionalUSD <= 0 {
		return "", fmt.Errorf("invalid target notional %v", notionalUSD)
	}
	precision, ok := quantityPrecision[symbol]
	if !ok {
		precision = 0
	}
	qty := decimal.NewFromFloat(notionalUSD).
		Div(decimal.NewFromFloat(price)).
		Round(precision)
	if qty.IsZero() {
		return "", fmt.Errorf("notional $%v is below the minimum %s quantity step", notionalUSD, symbol)
	}
	return qty.String(), nil
}
