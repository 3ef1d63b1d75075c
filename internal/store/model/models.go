package model

import (
	"gorm.io/datatypes"
)

// TradeEventModel is one append-only journal row: a confirmed fill, a close
// (auto or manual) or a cancel. The journal is write-only from the engine's
// point of view; it exists for inspection, not for state recovery.
type TradeEventModel struct {
	ID        int64          `gorm:"column:id;primaryKey" json:"id"`
	Kind      string         `gorm:"column:kind;index" json:"kind"`
	Symbol    string         `gorm:"column:symbol;index" json:"symbol"`
	OrderID   int64          `gorm:"column:order_id" json:"order_id"`
	Side      string         `gorm:"column:side" json:"side"`
	Quantity  float64        `gorm:"column:quantity" json:"quantity"`
	Leverage  int            `gorm:"column:leverage" json:"leverage"`
	ProfitUSD float64        `gorm:"column:profit_usd" json:"profit_usd"`
	Raw       datatypes.JSON `gorm:"column:raw" json:"raw,omitempty"`
	CreatedAt int64          `gorm:"column:created_at;autoCreateTime:milli" json:"created_at_ms"`
}

func (TradeEventModel) TableName() string { return "trade_events" }
