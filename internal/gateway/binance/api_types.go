package binance

import "bfuture/internal/pkg/convert"

// Wire-level payloads. Binance serializes most numeric fields as decimal
// strings; everything is mapped to typed values at this boundary so call
// sites never touch raw payloads.

type positionRiskPayload struct {
	Symbol           string `json:"symbol"`
	PositionAmt      string `json:"positionAmt"`
	EntryPrice       string `json:"entryPrice"`
	MarkPrice        string `json:"markPrice"`
	LiquidationPrice string `json:"liquidationPrice"`
	MarginRatio      string `json:"marginRatio"`
	UnRealizedProfit string `json:"unRealizedProfit"`
}

func (p positionRiskPayload) toPosition() Position {
	return Position{
		Symbol:           p.Symbol,
		PositionAmt:      convert.ToFloat64(p.PositionAmt),
		EntryPrice:       convert.ToFloat64(p.EntryPrice),
		MarkPrice:        convert.ToFloat64(p.MarkPrice),
		LiquidationPrice: convert.ToFloat64(p.LiquidationPrice),
		MarginRatio:      convert.ToFloat64(p.MarginRatio),
		UnrealizedProfit: convert.ToFloat64(p.UnRealizedProfit),
	}
}

type openOrderPayload struct {
	OrderID       int64  `json:"orderId"`
	ClientOrderID string `json:"clientOrderId"`
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	Type          string `json:"type"`
	Price         string `json:"price"`
	OrigQty       string `json:"origQty"`
}

func (o openOrderPayload) toOpenOrder() OpenOrder {
	return OpenOrder{
		OrderID:       o.OrderID,
		ClientOrderID: o.ClientOrderID,
		Symbol:        o.Symbol,
		Side:          o.Side,
		Type:          o.Type,
		Price:         convert.ToFloat64(o.Price),
		OrigQty:       convert.ToFloat64(o.OrigQty),
	}
}

type orderAckPayload struct {
	OrderID       int64  `json:"orderId"`
	ClientOrderID string `json:"clientOrderId"`
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	Status        string `json:"status"`
	OrigQty       string `json:"origQty"`
}

func (a orderAckPayload) toOrderAck() OrderAck {
	return OrderAck{
		OrderID:       a.OrderID,
		ClientOrderID: a.ClientOrderID,
		Symbol:        a.Symbol,
		Side:          a.Side,
		Status:        a.Status,
		OrigQty:       convert.ToFloat64(a.OrigQty),
	}
}

type orderStatusPayload struct {
	OrderID     int64  `json:"orderId"`
	Status      string `json:"status"`
	ExecutedQty string `json:"executedQty"`
	AvgPrice    string `json:"avgPrice"`
}

func (s orderStatusPayload) toOrderStatus() OrderStatus {
	return OrderStatus{
		OrderID:     s.OrderID,
		Status:      s.Status,
		ExecutedQty: convert.ToFloat64(s.ExecutedQty),
		AvgPrice:    convert.ToFloat64(s.AvgPrice),
	}
}
