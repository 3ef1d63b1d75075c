package engine

import (
	"sync"
	"time"
)

// Trade is a locally-tracked position intent: created once a placed order is
// confirmed (or assumed) filled, removed on auto-close or manual close. It is
// deliberately distinct from the exchange-reported Position — several trades
// may reference the same symbol while the exchange aggregates them into one
// position.
type Trade struct {
	Symbol    string
	OrderID   int64
	Quantity  float64
	Leverage  int
	EntryTime time.Time
}

func (t Trade) is(symbol string, orderID int64) bool {
	return t.Symbol == symbol && t.OrderID == orderID
}

// Ledger is the ordered collection of active trades, insertion order =
// creation order. All mutations are short critical sections so the monitoring
// tick and a concurrent manual close can never both remove (and so
// double-close) the same trade.
type Ledger struct {
	mu     sync.Mutex
	trades []Trade
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Add(t Trade) {
	l.mu.Lock()
	l.trades = append(l.trades, t)
	l.mu.Unlock()
}

// Remove deletes the trade identified by symbol+orderID. Returns false when
// no such trade exists (e.g. it was already auto-closed).
func (l *Ledger) Remove(symbol string, orderID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, t := range l.trades {
		if t.is(symbol, orderID) {
			l.trades = append(l.trades[:i], l.trades[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the trade identified by symbol+orderID.
func (l *Ledger) Find(symbol string, orderID int64) (Trade, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.trades {
		if t.is(symbol, orderID) {
			return t, true
		}
	}
	return Trade{}, false
}

// List returns a copy of the trades in insertion order, safe to range over
// while the ledger keeps mutating.
func (l *Ledger) List() []Trade {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.trades)
}
