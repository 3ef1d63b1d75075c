package livehttp

import (
	"context"
	"errors"
	"net/http"

	"bfuture/internal/engine"
	"bfuture/internal/gateway/binance"
	"bfuture/internal/store/model"

	"github.com/gin-gonic/gin"
)

// EngineAPI is the slice of the engine the transport needs: the snapshot plus
// the five user intents.
type EngineAPI interface {
	Running() bool
	Snapshot() *engine.Snapshot
	Start() error
	Stop() error
	PlaceTrade(ctx context.Context, symbol string) error
	CloseTrade(ctx context.Context, symbol string, orderID int64) error
	CancelOrder(ctx context.Context, symbol string, orderID int64) error
}

// EventSource reads the trade journal.
type EventSource interface {
	RecentEvents(ctx context.Context, limit int) ([]model.TradeEventModel, error)
}

type Router struct {
	engine EngineAPI
	events EventSource
}

func NewRouter(e EngineAPI, events EventSource) *Router {
	return &Router{engine: e, events: events}
}

func (r *Router) Register(g *gin.RouterGroup) {
	g.GET("/snapshot", r.handleSnapshot)
	g.POST("/start", r.handleStart)
	g.POST("/stop", r.handleStop)
	g.POST("/trade", r.handleTrade)
	g.POST("/close", r.handleClose)
	g.POST("/cancel", r.handleCancel)
	if r.events != nil {
		g.GET("/events", r.handleEvents)
	}
}

type positionResponse struct {
	Symbol           string  `json:"symbol"`
	PositionAmt      float64 `json:"position_amt"`
	EntryPrice       float64 `json:"entry_price"`
	MarkPrice        float64 `json:"mark_price"`
	LiquidationPrice float64 `json:"liquidation_price"`
	MarginRatio      float64 `json:"margin_ratio"`
	UnrealizedProfit float64 `json:"unrealized_profit"`
	PnLPct           float64 `json:"pnl_pct"`
}

type orderResponse struct {
	OrderID int64   `json:"order_id"`
	Symbol  string  `json:"symbol"`
	Side    string  `json:"side"`
	Type    string  `json:"type"`
	Price   float64 `json:"price"`
	OrigQty float64 `json:"orig_qty"`
}

type snapshotResponse struct {
	Running   bool               `json:"running"`
	UpdatedAt int64              `json:"updated_at_ms"`
	Positions []positionResponse `json:"positions"`
	Orders    []orderResponse    `json:"orders"`
	Trades    []engine.TradeView `json:"trades"`
}

func (r *Router) handleSnapshot(c *gin.Context) {
	snap := r.engine.Snapshot()
	resp := snapshotResponse{
		Running:   r.engine.Running(),
		UpdatedAt: snap.UpdatedAt.UnixMilli(),
		Positions: make([]positionResponse, 0, len(snap.Positions)),
		Orders:    make([]orderResponse, 0, len(snap.Orders)),
		Trades:    snap.Trades,
	}
	if resp.Trades == nil {
		resp.Trades = []engine.TradeView{}
	}
	for _, p := range snap.Positions {
		resp.Positions = append(resp.Positions, positionResponse{
			Symbol:           p.Symbol,
			PositionAmt:      p.PositionAmt,
			EntryPrice:       p.EntryPrice,
			MarkPrice:        p.MarkPrice,
			LiquidationPrice: p.LiquidationPrice,
			MarginRatio:      p.MarginRatio,
			UnrealizedProfit: p.UnrealizedProfit,
			PnLPct:           p.PnLPct,
		})
	}
	for _, o := range snap.Orders {
		resp.Orders = append(resp.Orders, orderResponse{
			OrderID: o.OrderID,
			Symbol:  o.Symbol,
			Side:    o.Side,
			Type:    o.Type,
			Price:   o.Price,
			OrigQty: o.OrigQty,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (r *Router) handleStart(c *gin.Context) {
	if err := r.engine.Start(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"running": true})
}

func (r *Router) handleStop(c *gin.Context) {
	if err := r.engine.Stop(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"running": false})
}

type tradeRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

func (r *Router) handleTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := r.engine.PlaceTrade(c.Request.Context(), req.Symbol); err != nil {
		c.JSON(intentStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type tradeRefRequest struct {
	Symbol  string `json:"symbol" binding:"required"`
	OrderID int64  `json:"order_id" binding:"required"`
}

func (r *Router) handleClose(c *gin.Context) {
	var req tradeRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := r.engine.CloseTrade(c.Request.Context(), req.Symbol, req.OrderID); err != nil {
		c.JSON(intentStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (r *Router) handleCancel(c *gin.Context) {
	var req tradeRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := r.engine.CancelOrder(c.Request.Context(), req.Symbol, req.OrderID); err != nil {
		c.JSON(intentStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (r *Router) handleEvents(c *gin.Context) {
	rows, err := r.events.RecentEvents(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": rows})
}

// intentStatus maps engine errors onto HTTP statuses. Missing credentials are
// a configuration fault of this deployment, not an exchange failure.
func intentStatus(err error) int {
	switch {
	case errors.Is(err, binance.ErrNoCredentials):
		return http.StatusPreconditionFailed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusBadGateway
	}
}
