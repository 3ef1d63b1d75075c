package binance

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const positionRiskBody = `[
	{"symbol":"BTCUSDT","positionAmt":"0.0002","entryPrice":"50000","markPrice":"50100","liquidationPrice":"41000","marginRatio":"0.05","unRealizedProfit":"2.01"},
	{"symbol":"ETHUSDT","positionAmt":"0","entryPrice":"0","markPrice":"3000","liquidationPrice":"0","marginRatio":"0","unRealizedProfit":"0"}
]`

const openOrdersBody = `[
	{"orderId":42,"clientOrderId":"bfut-abc","symbol":"BTCUSDT","side":"BUY","type":"LIMIT","price":"49000","origQty":"0.0002"}
]`

func TestPositionsAndOrders(t *testing.T) {
	t.Run("both sides returned", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/fapi/v2/positionRisk":
				w.Write([]byte(positionRiskBody))
			case "/fapi/v1/openOrders":
				w.Write([]byte(openOrdersBody))
			default:
				http.NotFound(w, r)
			}
		}))

		orders, positions := client.PositionsAndOrders(context.Background())

		require.Len(t, positions, 1, "flat positions must be filtered out")
		assert.Equal(t, "BTCUSDT", positions[0].Symbol)
		assert.InDelta(t, 0.0002, positions[0].PositionAmt, 1e-9)
		assert.InDelta(t, 2.01, positions[0].UnrealizedProfit, 1e-9)

		require.Len(t, orders, 1)
		assert.Equal(t, int64(42), orders[0].OrderID)
		assert.InDelta(t, 49000.0, orders[0].Price, 1e-9)
	})

	t.Run("position failure keeps orders", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/fapi/v2/positionRisk":
				w.WriteHeader(http.StatusInternalServerError)
			case "/fapi/v1/openOrders":
				w.Write([]byte(openOrdersBody))
			}
		}))

		orders, positions := client.PositionsAndOrders(context.Background())

		assert.Empty(t, positions)
		require.Len(t, orders, 1)
		assert.Equal(t, "BTCUSDT", orders[0].Symbol)
	})

	t.Run("order failure keeps positions", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/fapi/v2/positionRisk":
				w.Write([]byte(positionRiskBody))
			case "/fapi/v1/openOrders":
				w.WriteHeader(http.StatusTooManyRequests)
			}
		}))

		orders, positions := client.PositionsAndOrders(context.Background())

		assert.Empty(t, orders)
		require.Len(t, positions, 1)
	})

	t.Run("total failure yields empty slices", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))

		orders, positions := client.PositionsAndOrders(context.Background())

		assert.Empty(t, orders)
		assert.Empty(t, positions)
	})
}
