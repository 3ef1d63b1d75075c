// Package sqlite persists the trade journal.
package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bfuture/internal/engine"
	"bfuture/internal/logger"
	"bfuture/internal/store/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("journal path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

func NewStoreFromDB(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db cannot be nil")
	}
	if err := db.AutoMigrate(&model.TradeEventModel{}); err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(2)
	}
	return &Store{db: db}, nil
}

// Record appends one journal row. Persistence failures are logged and
// swallowed: the journal must never block a trading path.
func (s *Store) Record(ctx context.Context, e engine.JournalEvent) {
	if s == nil || s.db == nil {
		return
	}
	row := model.TradeEventModel{
		Kind:      e.Kind,
		Symbol:    e.Symbol,
		OrderID:   e.OrderID,
		Side:      e.Side,
		Quantity:  e.Quantity,
		Leverage:  e.Leverage,
		ProfitUSD: e.ProfitUSD,
	}
	if e.Raw != nil {
		if raw, err := json.Marshal(e.Raw); err == nil {
			row.Raw = raw
		}
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		logger.Warnf("journal write failed (%s %s#%d): %v", e.Kind, e.Symbol, e.OrderID, err)
	}
}

// RecentEvents returns the latest journal rows, newest first.
func (s *Store) RecentEvents(ctx context.Context, limit int) ([]model.TradeEventModel, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []model.TradeEventModel
	if err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
