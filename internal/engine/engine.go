// Package engine ties the gateway, the trade ledger and the monitoring loop
// into the scalping engine: it accepts user intents, keeps the latest account
// snapshot, and autonomously closes trades once their position reaches the
// configured unrealized-profit target.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"bfuture/internal/config"
	"bfuture/internal/gateway/binance"
	"bfuture/internal/logger"
	"bfuture/internal/market"
	symbolpkg "bfuture/internal/pkg/symbol"
	"bfuture/internal/scheduler"
)

// Gateway reads account state. Failures are reported as empty results, never
// as errors (see the gateway contract).
type Gateway interface {
	PositionsAndOrders(ctx context.Context) ([]binance.OpenOrder, []binance.Position)
}

// Executor places and manages orders.
type Executor interface {
	PlaceMarketOrder(ctx context.Context, symbol, side, quantity string, leverage int) (binance.OrderAck, error)
	WaitForFill(ctx context.Context, symbol string, orderID int64, attempts int, interval time.Duration) (bool, error)
	ClosePosition(ctx context.Context, symbol string, positionAmt float64) (binance.OrderAck, error)
	CancelOrder(ctx context.Context, symbol string, orderID int64) error
}

// Notifier delivers the transient outcome messages of intents and
// auto-closes. Delivery is best-effort.
type Notifier interface {
	Notify(text string)
}

// JournalEvent is one append-only record of a money-moving action.
type JournalEvent struct {
	Kind      string // "fill", "auto_close", "manual_close", "cancel"
	Symbol    string
	OrderID   int64
	Side      string
	Quantity  float64
	Leverage  int
	ProfitUSD float64
	Raw       any
}

// Journal persists events for later inspection. It is never read back for
// engine state and must not block trading on failure.
type Journal interface {
	Record(ctx context.Context, e JournalEvent)
}

// Engine is the trading core. One long-lived monitoring loop runs while the
// engine is started; intents arrive concurrently from the transport layer.
type Engine struct {
	gateway  Gateway
	executor Executor
	prices   market.Source
	notifier Notifier
	journal  Journal

	cfgMu sync.RWMutex
	cfg   config.EngineConfig

	ledger   *Ledger
	snapshot atomic.Pointer[Snapshot]

	stateMu  sync.Mutex
	running  bool
	cancel   context.CancelFunc
	loopDone chan struct{}

	nowFn func() time.Time
}

func New(cfg config.EngineConfig, gw Gateway, exec Executor, prices market.Source, notifier Notifier, journal Journal) *Engine {
	e := &Engine{
		gateway:  gw,
		executor: exec,
		prices:   prices,
		notifier: notifier,
		journal:  journal,
		cfg:      cfg,
		ledger:   NewLedger(),
		nowFn:    time.Now,
	}
	e.snapshot.Store(&Snapshot{UpdatedAt: e.nowFn()})
	return e
}

// UpdateTunables swaps in hot-reloaded engine settings. The new tick interval
// takes effect after a restart of the loop; everything else applies on the
// next tick.
func (e *Engine) UpdateTunables(cfg config.EngineConfig) {
	e.cfgMu.Lock()
	e.cfg = cfg
	e.cfgMu.Unlock()
}

func (e *Engine) tunables() config.EngineConfig {
	e.cfgMu.RLock()
	defer e.cfgMu.RUnlock()
	return e.cfg
}

// Running reports the monitoring loop state.
func (e *Engine) Running() bool {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	return e.running
}

// Snapshot returns the latest self-consistent snapshot.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Start transitions Stopped → Running and spawns the monitoring loop.
func (e *Engine) Start() error {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	if e.running {
		return fmt.Errorf("engine already running")
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.loopDone = make(chan struct{})
	e.running = true

	interval := e.tunables().TickInterval()
	go func(done chan struct{}) {
		defer close(done)
		scheduler.NewIntervalScheduler(ctx, interval).Start(e.tick)
	}(e.loopDone)

	logger.Infof("engine started, tick interval %s", interval)
	return nil
}

// Stop transitions Running → Stopped. The loop observes cancellation at its
// next suspension point; any in-flight exchange call finishes or times out
// on its own and its result is discarded.
func (e *Engine) Stop() error {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	if !e.running {
		return fmt.Errorf("engine not running")
	}
	e.cancel()
	<-e.loopDone
	e.running = false
	e.cancel = nil
	e.loopDone = nil
	if snap := e.snapshot.Load(); snap != nil {
		stopped := *snap
		stopped.Running = false
		e.snapshot.Store(&stopped)
	}
	logger.Infof("engine stopped")
	return nil
}

// tick is one monitoring pass: refresh the snapshot, run the profit scan,
// sweep stale trades. Errors are contained per tick and never end the loop.
func (e *Engine) tick(ctx context.Context) {
	orders, positions := e.gateway.PositionsAndOrders(ctx)
	now := e.nowFn()
	snap := &Snapshot{
		Positions: buildPositionViews(positions),
		Orders:    orders,
		Trades:    buildTradeViews(e.ledger.List(), now),
		Running:   true,
		UpdatedAt: now,
	}
	e.snapshot.Store(snap)

	if ctx.Err() != nil {
		return
	}
	e.scanProfitTargets(ctx, positions)
	e.sweepStaleTrades(positions, now)
}

// scanProfitTargets auto-closes at most one trade per symbol per tick: the
// first ledger trade (creation order) whose symbol has a position at or above
// the profit target wins.
func (e *Engine) scanProfitTargets(ctx context.Context, positions []binance.Position) {
	cfg := e.tunables()
	bySymbol := make(map[string]binance.Position, len(positions))
	for _, p := range positions {
		bySymbol[p.Symbol] = p
	}
	closed := make(map[string]bool)
	for _, trade := range e.ledger.List() {
		if ctx.Err() != nil {
			return
		}
		if closed[trade.Symbol] {
			continue
		}
		pos, ok := bySymbol[trade.Symbol]
		if !ok || pos.UnrealizedProfit < cfg.ProfitTargetUSD {
			continue
		}
		closed[trade.Symbol] = true
		e.autoClose(ctx, trade, pos)
	}
}

func (e *Engine) autoClose(ctx context.Context, trade Trade, pos binance.Position) {
	logger.Infof("profit target hit on %s: unrealized $%.2f >= $%.2f, closing",
		pos.Symbol, pos.UnrealizedProfit, e.tunables().ProfitTargetUSD)
	ack, err := e.executor.ClosePosition(ctx, pos.Symbol, pos.PositionAmt)
	if err != nil {
		logger.Errorf("auto-close of %s failed: %v", pos.Symbol, err)
		e.notify(fmt.Sprintf("auto-close of %s failed: %v", pos.Symbol, err))
		return
	}
	e.ledger.Remove(trade.Symbol, trade.OrderID)
	e.record(ctx, JournalEvent{
		Kind:      "auto_close",
		Symbol:    pos.Symbol,
		OrderID:   ack.OrderID,
		Side:      ack.Side,
		Quantity:  abs(pos.PositionAmt),
		Leverage:  trade.Leverage,
		ProfitUSD: pos.UnrealizedProfit,
		Raw:       ack,
	})
	e.notify(fmt.Sprintf("closed %s at profit target, +$%.2f locked in", pos.Symbol, pos.UnrealizedProfit))
}

// sweepStaleTrades reconciles ledger entries left behind when a close
// flattened an aggregated position: a trade whose symbol has no exchange
// position and whose age exceeds the grace period cannot be closed anymore
// and is dropped. The grace period keeps fresh trades safe while their fill
// propagates into positionRisk.
func (e *Engine) sweepStaleTrades(positions []binance.Position, now time.Time) {
	grace := e.tunables().StaleTradeGrace()
	held := make(map[string]bool, len(positions))
	for _, p := range positions {
		held[p.Symbol] = true
	}
	for _, trade := range e.ledger.List() {
		if held[trade.Symbol] || now.Sub(trade.EntryTime) < grace {
			continue
		}
		if e.ledger.Remove(trade.Symbol, trade.OrderID) {
			logger.Warnf("dropping stale trade %s#%d: no exchange position backs it", trade.Symbol, trade.OrderID)
		}
	}
}

// PlaceTrade opens a scalping position: size the configured notional at the
// current price, submit a BUY market order with the configured leverage, wait
// for the fill confirmation, then register the trade in the ledger.
func (e *Engine) PlaceTrade(ctx context.Context, symbol string) error {
	if !e.Running() {
		return fmt.Errorf("engine must be started first")
	}
	symbol = symbolpkg.Normalize(symbol)
	if !symbolpkg.Valid(symbol) {
		return fmt.Errorf("invalid symbol %q", symbol)
	}
	cfg := e.tunables()
	if !symbolAllowed(cfg.Symbols, symbol) {
		return fmt.Errorf("symbol %s is not in the configured whitelist", symbol)
	}
	price, err := e.prices.LastPrice(ctx, symbol)
	if err != nil {
		e.notify(fmt.Sprintf("trade on %s aborted: %v", symbol, err))
		return err
	}
	quantity, err := Quantity(symbol, price, cfg.TargetNotionalUSD)
	if err != nil {
		e.notify(fmt.Sprintf("trade on %s aborted: %v", symbol, err))
		return err
	}
	logger.Infof("placing %s BUY qty=%s at ~%.2f (%dx)", symbol, quantity, price, cfg.Leverage)

	ack, err := e.executor.PlaceMarketOrder(ctx, symbol, binance.SideBuy, quantity, cfg.Leverage)
	if err != nil {
		e.notify(fmt.Sprintf("order on %s failed: %v", symbol, err))
		return err
	}
	filled, err := e.executor.WaitForFill(ctx, symbol, ack.OrderID, cfg.FillPollAttempts, cfg.FillPollInterval())
	if err != nil {
		return err
	}
	if !filled {
		logger.Warnf("order %d on %s unconfirmed, tracking it anyway", ack.OrderID, symbol)
	}
	trade := Trade{
		Symbol:    symbol,
		OrderID:   ack.OrderID,
		Quantity:  ack.OrigQty,
		Leverage:  cfg.Leverage,
		EntryTime: e.nowFn(),
	}
	e.ledger.Add(trade)
	e.record(ctx, JournalEvent{
		Kind:     "fill",
		Symbol:   symbol,
		OrderID:  ack.OrderID,
		Side:     binance.SideBuy,
		Quantity: ack.OrigQty,
		Leverage: cfg.Leverage,
		Raw:      ack,
	})
	e.notify(fmt.Sprintf("opened %s %s @ %dx (order %d), %d active trades",
		symbol, quantity, cfg.Leverage, ack.OrderID, e.ledger.Len()))
	return nil
}

// CloseTrade manually closes the ledger trade identified by symbol+orderID.
// The exchange aggregates same-symbol exposure, so this flattens the whole
// position; remaining same-symbol ledger entries are reconciled by the sweep.
func (e *Engine) CloseTrade(ctx context.Context, symbol string, orderID int64) error {
	symbol = symbolpkg.Normalize(symbol)
	trade, ok := e.ledger.Find(symbol, orderID)
	if !ok {
		return fmt.Errorf("no active trade %s#%d", symbol, orderID)
	}
	_, positions := e.gateway.PositionsAndOrders(ctx)
	var pos *binance.Position
	for i := range positions {
		if positions[i].Symbol == symbol {
			pos = &positions[i]
			break
		}
	}
	if pos == nil {
		// Nothing on the exchange to close; just drop the ledger entry.
		e.ledger.Remove(symbol, orderID)
		e.notify(fmt.Sprintf("trade %s#%d removed (no exchange position)", symbol, orderID))
		return nil
	}
	ack, err := e.executor.ClosePosition(ctx, symbol, pos.PositionAmt)
	if err != nil {
		e.notify(fmt.Sprintf("manual close of %s failed: %v", symbol, err))
		return err
	}
	e.ledger.Remove(symbol, orderID)
	e.record(ctx, JournalEvent{
		Kind:      "manual_close",
		Symbol:    symbol,
		OrderID:   ack.OrderID,
		Side:      ack.Side,
		Quantity:  abs(pos.PositionAmt),
		Leverage:  trade.Leverage,
		ProfitUSD: pos.UnrealizedProfit,
		Raw:       ack,
	})
	e.notify(fmt.Sprintf("closed %s manually, unrealized was $%.2f", symbol, pos.UnrealizedProfit))
	return nil
}

// CancelOrder cancels a resting exchange order.
func (e *Engine) CancelOrder(ctx context.Context, symbol string, orderID int64) error {
	symbol = symbolpkg.Normalize(symbol)
	if err := e.executor.CancelOrder(ctx, symbol, orderID); err != nil {
		e.notify(fmt.Sprintf("cancel of order %d failed: %v", orderID, err))
		return err
	}
	e.record(ctx, JournalEvent{Kind: "cancel", Symbol: symbol, OrderID: orderID})
	e.notify(fmt.Sprintf("order %d on %s cancelled", orderID, symbol))
	return nil
}

func (e *Engine) notify(text string) {
	if e.notifier == nil {
		return
	}
	e.notifier.Notify(text)
}

func (e *Engine) record(ctx context.Context, ev JournalEvent) {
	if e.journal == nil {
		return
	}
	e.journal.Record(ctx, ev)
}

func symbolAllowed(allowed []string, symbol string) bool {
	for _, s := range allowed {
		if s == symbol {
			return true
		}
	}
	return false
}
