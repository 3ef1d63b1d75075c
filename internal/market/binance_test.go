package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) *BinanceSource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBinanceSource(Config{RESTBaseURL: srv.URL, HTTPTimeout: 2 * time.Second})
}

func TestLastPrice(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"50000.50"}`))
	})

	price, err := src.LastPrice(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.InDelta(t, 50000.50, price, 1e-9)
}

func TestLastPriceRejectsNonPositive(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"BTCUSDT","price":"0"}`))
	})

	_, err := src.LastPrice(context.Background(), "BTCUSDT")
	assert.Error(t, err, "a zero price is an error, never a quote")
}

func TestLastPriceMissingSymbol(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := src.LastPrice(context.Background(), "BTCUSDT")
	assert.Error(t, err)
}

func TestLastPriceTransportFailure(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"code":-1000,"msg":"down"}`))
	})

	_, err := src.LastPrice(context.Background(), "BTCUSDT")
	assert.Error(t, err)
}
