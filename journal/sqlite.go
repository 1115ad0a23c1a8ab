package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, pair, direction, amount, entry_price, exit_price, open_time, close_time, profit, algorithm)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Pair, t.Direction, t.Amount, t.EntryPrice,
		t.ExitPrice, t.OpenTime, t.CloseTime, t.Profit, t.Algorithm,
	)
	return err
}

func (j *SQLite) RecordSnapshot(s PortfolioSnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO snapshots
		(time, balance, total_profit, today_profit, open_positions, total_trades, margin_used)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Time, s.Balance, s.TotalProfit, s.TodayProfit, s.OpenPositions, s.TotalTrades, s.MarginUsed,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
