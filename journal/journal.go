package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/alphafx/config"
)

// TradeRecord is one closed trade.
type TradeRecord struct {
	TradeID    string
	Pair       string
	Direction  string
	Amount     float64
	EntryPrice float64
	ExitPrice  float64
	OpenTime   time.Time
	CloseTime  time.Time
	Profit     float64
	Algorithm  string
}

// PortfolioSnapshot is the portfolio as it stood after an open or a close.
type PortfolioSnapshot struct {
	Time          time.Time
	Balance       float64
	TotalProfit   float64
	TodayProfit   float64
	OpenPositions int
	TotalTrades   int
	MarginUsed    float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordSnapshot(PortfolioSnapshot) error
	Close() error
}

// Discard is a Journal that records nothing.
var Discard Journal = discard{}

type discard struct{}

func (discard) RecordTrade(TradeRecord) error          { return nil }
func (discard) RecordSnapshot(PortfolioSnapshot) error { return nil }
func (discard) Close() error                           { return nil }

// Open builds the journal the config asks for.
func Open(cfg config.JournalConfig) (Journal, error) {
	switch cfg.Type {
	case "", "none":
		return Discard, nil
	case "csv":
		return NewCSV(cfg.TradesFile, cfg.SnapshotsFile)
	case "sqlite":
		return NewSQLite(cfg.DBPath)
	}
	return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
}
