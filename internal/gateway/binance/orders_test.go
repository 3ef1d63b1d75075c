package binance

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler captures every request so tests can assert on the exact
// sequence of calls the client made.
type recordingHandler struct {
	mu       sync.Mutex
	requests []*http.Request
	respond  func(w http.ResponseWriter, r *http.Request)
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.requests = append(h.requests, r.Clone(context.Background()))
	h.mu.Unlock()
	h.respond(w, r)
}

func (h *recordingHandler) byPath(path string) []*http.Request {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*http.Request
	for _, r := range h.requests {
		if r.URL.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func queryOf(t *testing.T, r *http.Request) url.Values {
	t.Helper()
	values, err := url.ParseQuery(r.URL.RawQuery)
	require.NoError(t, err)
	return values
}

func TestPlaceMarketOrder(t *testing.T) {
	handler := &recordingHandler{respond: func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fapi/v1/leverage":
			w.Write([]byte(`{"leverage":50,"symbol":"BTCUSDT"}`))
		case "/fapi/v1/order":
			w.Write([]byte(`{"orderId":1001,"clientOrderId":"bfut-x","symbol":"BTCUSDT","side":"BUY","status":"NEW","origQty":"0.0002"}`))
		}
	}}
	client, _ := newTestClient(t, handler)

	ack, err := client.PlaceMarketOrder(context.Background(), "BTCUSDT", SideBuy, "0.0002", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), ack.OrderID)
	assert.InDelta(t, 0.0002, ack.OrigQty, 1e-9)

	leverageCalls := handler.byPath("/fapi/v1/leverage")
	require.Len(t, leverageCalls, 1)
	assert.Equal(t, http.MethodPost, leverageCalls[0].Method)
	assert.Equal(t, "50", queryOf(t, leverageCalls[0]).Get("leverage"))

	orderCalls := handler.byPath("/fapi/v1/order")
	require.Len(t, orderCalls, 1)
	q := queryOf(t, orderCalls[0])
	assert.Equal(t, "BUY", q.Get("side"))
	assert.Equal(t, "MARKET", q.Get("type"))
	assert.Equal(t, "0.0002", q.Get("quantity"))
	assert.True(t, strings.HasPrefix(q.Get("newClientOrderId"), "bfut-"))
	assert.Empty(t, q.Get("reduceOnly"))
}

func TestPlaceMarketOrderLeverageFailureIsBestEffort(t *testing.T) {
	handler := &recordingHandler{respond: func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fapi/v1/leverage":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":-4028,"msg":"Leverage is not valid."}`))
		case "/fapi/v1/order":
			w.Write([]byte(`{"orderId":1002,"symbol":"ETHUSDT","side":"BUY","status":"NEW","origQty":"0.003"}`))
		}
	}}
	client, _ := newTestClient(t, handler)

	ack, err := client.PlaceMarketOrder(context.Background(), "ETHUSDT", SideBuy, "0.003", 200)
	require.NoError(t, err, "leverage rejection must not block the order")
	assert.Equal(t, int64(1002), ack.OrderID)
	assert.Len(t, handler.byPath("/fapi/v1/order"), 1)
}

func TestPlaceMarketOrderTransportFailure(t *testing.T) {
	handler := &recordingHandler{respond: func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}}
	client, _ := newTestClient(t, handler)

	_, err := client.PlaceMarketOrder(context.Background(), "BTCUSDT", SideBuy, "0.0002", 50)
	require.Error(t, err, "transport errors surface, no fill is synthesized")
}

func TestWaitForFill(t *testing.T) {
	t.Run("fill on later poll", func(t *testing.T) {
		var polls int
		handler := &recordingHandler{respond: func(w http.ResponseWriter, r *http.Request) {
			polls++
			if polls < 3 {
				w.Write([]byte(`{"orderId":7,"status":"NEW","executedQty":"0","avgPrice":"0"}`))
				return
			}
			w.Write([]byte(`{"orderId":7,"status":"FILLED","executedQty":"0.0002","avgPrice":"50005"}`))
		}}
		client, _ := newTestClient(t, handler)

		filled, err := client.WaitForFill(context.Background(), "BTCUSDT", 7, 10, time.Millisecond)
		require.NoError(t, err)
		assert.True(t, filled)
		assert.Equal(t, 3, polls)
	})

	t.Run("exhaustion is not an error", func(t *testing.T) {
		handler := &recordingHandler{respond: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"orderId":7,"status":"NEW","executedQty":"0","avgPrice":"0"}`))
		}}
		client, _ := newTestClient(t, handler)

		filled, err := client.WaitForFill(context.Background(), "BTCUSDT", 7, 4, time.Millisecond)
		require.NoError(t, err)
		assert.False(t, filled)
		assert.Len(t, handler.byPath("/fapi/v1/order"), 4)
	})

	t.Run("poll errors are retried", func(t *testing.T) {
		var polls int
		handler := &recordingHandler{respond: func(w http.ResponseWriter, r *http.Request) {
			polls++
			if polls == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"orderId":7,"status":"FILLED","executedQty":"0.0002","avgPrice":"50005"}`))
		}}
		client, _ := newTestClient(t, handler)

		filled, err := client.WaitForFill(context.Background(), "BTCUSDT", 7, 5, time.Millisecond)
		require.NoError(t, err)
		assert.True(t, filled)
	})

	t.Run("context cancellation aborts", func(t *testing.T) {
		handler := &recordingHandler{respond: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"orderId":7,"status":"NEW","executedQty":"0","avgPrice":"0"}`))
		}}
		client, _ := newTestClient(t, handler)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.WaitForFill(ctx, "BTCUSDT", 7, 10, time.Second)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClosePosition(t *testing.T) {
	newCloseHandler := func() *recordingHandler {
		return &recordingHandler{respond: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"orderId":2001,"symbol":"ETHUSDT","side":"BUY","status":"NEW","origQty":"2"}`))
		}}
	}

	t.Run("short closes with BUY", func(t *testing.T) {
		handler := newCloseHandler()
		client, _ := newTestClient(t, handler)

		_, err := client.ClosePosition(context.Background(), "ETHUSDT", -2.0)
		require.NoError(t, err)

		calls := handler.byPath("/fapi/v1/order")
		require.Len(t, calls, 1)
		q := queryOf(t, calls[0])
		assert.Equal(t, "BUY", q.Get("side"))
		assert.Equal(t, "2", q.Get("quantity"))
		assert.Equal(t, "true", q.Get("reduceOnly"))
	})

	t.Run("long closes with SELL", func(t *testing.T) {
		handler := newCloseHandler()
		client, _ := newTestClient(t, handler)

		_, err := client.ClosePosition(context.Background(), "BTCUSDT", 0.0002)
		require.NoError(t, err)

		q := queryOf(t, handler.byPath("/fapi/v1/order")[0])
		assert.Equal(t, "SELL", q.Get("side"))
		assert.Equal(t, "0.0002", q.Get("quantity"))
	})

	t.Run("flat position refused", func(t *testing.T) {
		handler := newCloseHandler()
		client, _ := newTestClient(t, handler)

		_, err := client.ClosePosition(context.Background(), "BTCUSDT", 0)
		assert.Error(t, err)
		assert.Empty(t, handler.requests)
	})
}

func TestCancelOrder(t *testing.T) {
	handler := &recordingHandler{respond: func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"orderId":55,"status":"CANCELED"}`))
	}}
	client, _ := newTestClient(t, handler)

	err := client.CancelOrder(context.Background(), "BTCUSDT", 55)
	require.NoError(t, err)

	calls := handler.byPath("/fapi/v1/order")
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodDelete, calls[0].Method)
	assert.Equal(t, "55", queryOf(t, calls[0]).Get("orderId"))
}
