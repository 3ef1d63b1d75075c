package engine

import (
	"time"

	"bfuture/internal/gateway/binance"
)

// PositionView is an exchange position plus the derived PnL percentage:
// unrealized profit relative to the position's entry notional.
type PositionView struct {
	binance.Position
	PnLPct float64
}

// TradeView is the presentation shape of a ledger trade.
type TradeView struct {
	Symbol         string  `json:"symbol"`
	OrderID        int64   `json:"order_id"`
	Quantity       float64 `json:"quantity"`
	Leverage       int     `json:"leverage"`
	ElapsedSeconds int64   `json:"elapsed_seconds"`
}

// Snapshot is the self-consistent state handed to the presentation layer.
// It is built once per tick and swapped in atomically; readers never observe
// a partially updated snapshot.
type Snapshot struct {
	Positions []PositionView
	Orders    []binance.OpenOrder
	Trades    []TradeView
	Running   bool
	UpdatedAt time.Time
}

func buildPositionViews(positions []binance.Position) []PositionView {
	out := make([]PositionView, 0, len(positions))
	for _, p := range positions {
		view := PositionView{Position: p}
		if notional := abs(p.PositionAmt) * p.EntryPrice; notional > 0 {
			view.PnLPct = p.UnrealizedProfit / notional * 100
		}
		out = append(out, view)
	}
	return out
}

func buildTradeViews(trades []Trade, now time.Time) []TradeView {
	out := make([]TradeView, 0, len(trades))
	for _, t := range trades {
		out = append(out, TradeView{
			Symbol:         t.Symbol,
			OrderID:        t.OrderID,
			Quantity:       t.Quantity,
			Leverage:       t.Leverage,
			ElapsedSeconds: int64(now.Sub(t.EntryTime).Seconds()),
		})
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
