package binance

import (
	"context"
	"net/http"
	"sync"

	"bfuture/internal/logger"
)

// PositionsAndOrders fetches open positions and resting orders with two
// independent signed GETs. The fetches run concurrently and fail
// independently: losing one side never suppresses the other, and a total
// failure yields two empty slices rather than an error. Callers treat empty
// results as "nothing observed this tick".
func (c *Client) PositionsAndOrders(ctx context.Context) (orders []OpenOrder, positions []Position) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		positions, err = c.openPositions(ctx)
		if err != nil {
			logger.Warnf("fetching positions failed: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		orders, err = c.openOrders(ctx)
		if err != nil {
			logger.Warnf("fetching open orders failed: %v", err)
		}
	}()
	wg.Wait()
	return orders, positions
}

// openPositions returns positions with nonzero positionAmt.
func (c *Client) openPositions(ctx context.Context) ([]Position, error) {
	var payload []positionRiskPayload
	if err := c.doSigned(ctx, http.MethodGet, "/fapi/v2/positionRisk", nil, &payload); err != nil {
		return nil, err
	}
	out := make([]Position, 0, len(payload))
	for _, p := range payload {
		pos := p.toPosition()
		if pos.PositionAmt == 0 {
			continue
		}
		out = append(out, pos)
	}
	return out, nil
}

func (c *Client) openOrders(ctx context.Context) ([]OpenOrder, error) {
	var payload []openOrderPayload
	if err := c.doSigned(ctx, http.MethodGet, "/fapi/v1/openOrders", nil, &payload); err != nil {
		return nil, err
	}
	out := make([]OpenOrder, 0, len(payload))
	for _, o := range payload {
		out = append(out, o.toOpenOrder())
	}
	return out, nil
}
