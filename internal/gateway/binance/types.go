package binance

// Position is an exchange-reported futures position. Snapshots are replaced
// wholesale on each poll; nothing here is engine-owned.
type Position struct {
	Symbol           string
	PositionAmt      float64 // signed: >0 long, <0 short
	EntryPrice       float64
	MarkPrice        float64
	LiquidationPrice float64
	MarginRatio      float64
	UnrealizedProfit float64
}

// OpenOrder is an exchange-reported resting order.
type OpenOrder struct {
	OrderID       int64
	ClientOrderID string
	Symbol        string
	Side          string
	Type          string
	Price         float64
	OrigQty       float64
}

// OrderAck is the gateway's answer to a placed or closing order.
type OrderAck struct {
	OrderID       int64
	ClientOrderID string
	Symbol        string
	Side          string
	Status        string
	OrigQty       float64
}

// OrderStatus is the polled state of a single order.
type OrderStatus struct {
	OrderID     int64
	Status      string
	ExecutedQty float64
	AvgPrice    float64
}
