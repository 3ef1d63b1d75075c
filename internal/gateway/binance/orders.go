package binance

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"bfuture/internal/logger"

	"github.com/google/uuid"
)

// Order sides and the states WaitForFill polls toward.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"

	orderTypeMarket = "MARKET"
)

// SetLeverage sets the leverage multiplier for a symbol. Single attempt,
// best-effort: order placement proceeds even when this fails.
func (c *Client) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	params := Params{}.
		With("symbol", symbol).
		With("leverage", strconv.Itoa(leverage))
	if err := c.doSigned(ctx, http.MethodPost, "/fapi/v1/leverage", params, nil); err != nil {
		return fmt.Errorf("setting leverage %dx for %s failed: %w", leverage, symbol, err)
	}
	return nil
}

// PlaceMarketOrder sets leverage best-effort, then submits a MARKET order.
// quantity is the already-rounded base asset amount, serialized exactly as
// signed. Transport failures surface as errors; no fill is ever synthesized.
func (c *Client) PlaceMarketOrder(ctx context.Context, symbol, side, quantity string, leverage int) (OrderAck, error) {
	if err := c.SetLeverage(ctx, symbol, leverage); err != nil {
		logger.Warnf("%v (continuing with current leverage)", err)
	}
	params := Params{}.
		With("symbol", symbol).
		With("side", side).
		With("type", orderTypeMarket).
		With("quantity", quantity).
		With("newClientOrderId", "bfut-"+uuid.NewString())
	var payload orderAckPayload
	if err := c.doSigned(ctx, http.MethodPost, "/fapi/v1/order", params, &payload); err != nil {
		return OrderAck{}, fmt.Errorf("placing %s %s order failed: %w", symbol, side, err)
	}
	return payload.toOrderAck(), nil
}

// OrderStatusOf fetches the current state of a single order.
func (c *Client) OrderStatusOf(ctx context.Context, symbol string, orderID int64) (OrderStatus, error) {
	params := Params{}.
		With("symbol", symbol).
		With("orderId", strconv.FormatInt(orderID, 10))
	var payload orderStatusPayload
	if err := c.doSigned(ctx, http.MethodGet, "/fapi/v1/order", params, &payload); err != nil {
		return OrderStatus{}, fmt.Errorf("querying order %d on %s failed: %w", orderID, symbol, err)
	}
	return payload.toOrderStatus(), nil
}

// WaitForFill polls the order until executedQty is nonzero, for at most
// attempts polls spaced by interval. Exhaustion is not an error: the order is
// simply still unconfirmed and the caller proceeds. Context cancellation
// aborts between polls.
func (c *Client) WaitForFill(ctx context.Context, symbol string, orderID int64, attempts int, interval time.Duration) (bool, error) {
	for i := 0; i < attempts; i++ {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(interval):
		}
		status, err := c.OrderStatusOf(ctx, symbol, orderID)
		if err != nil {
			logger.Debugf("fill poll %d/%d for order %d: %v", i+1, attempts, orderID, err)
			continue
		}
		if status.ExecutedQty != 0 {
			return true, nil
		}
	}
	logger.Warnf("order %d on %s still unfilled after %d polls", orderID, symbol, attempts)
	return false, nil
}

// ClosePosition submits an opposite-side reduce-only MARKET order sized at
// the absolute current position amount. SELL flattens a long, BUY a short.
func (c *Client) ClosePosition(ctx context.Context, symbol string, positionAmt float64) (OrderAck, error) {
	if positionAmt == 0 {
		return OrderAck{}, fmt.Errorf("no %s position to close", symbol)
	}
	side := SideSell
	if positionAmt < 0 {
		side = SideBuy
	}
	quantity := strconv.FormatFloat(math.Abs(positionAmt), 'f', -1, 64)
	params := Params{}.
		With("symbol", symbol).
		With("side", side).
		With("type", orderTypeMarket).
		With("quantity", quantity).
		With("reduceOnly", "true").
		With("newClientOrderId", "bfut-close-"+uuid.NewString())
	var payload orderAckPayload
	if err := c.doSigned(ctx, http.MethodPost, "/fapi/v1/order", params, &payload); err != nil {
		return OrderAck{}, fmt.Errorf("closing %s position failed: %w", symbol, err)
	}
	return payload.toOrderAck(), nil
}

// CancelOrder cancels a resting order via the real DELETE endpoint.
func (c *Client) CancelOrder(ctx context.Context, symbol string, orderID int64) error {
	params := Params{}.
		With("symbol", symbol).
		With("orderId", strconv.FormatInt(orderID, 10))
	if err := c.doSigned(ctx, http.MethodDelete, "/fapi/v1/order", params, nil); err != nil {
		return fmt.Errorf("cancelling order %d on %s failed: %w", orderID, symbol, err)
	}
	return nil
}
