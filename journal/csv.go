package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"
	"time"
)

type CSVJournal struct {
	mu        sync.Mutex
	trades    *csv.Writer
	snapshots *csv.Writer
	tf, sf    *os.File
}

var (
	tradesHeader    = []string{"trade_id", "pair", "direction", "amount", "entry_price", "exit_price", "open_time", "close_time", "profit", "algorithm"}
	snapshotsHeader = []string{"time", "balance", "total_profit", "today_profit", "open_positions", "total_trades", "margin_used"}
)

func NewCSV(tradesPath, snapshotsPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(snapshotsPath)
	if err != nil {
		_ = tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	sw := csv.NewWriter(sf)

	if err := tw.Write(tradesHeader); err != nil {
		return nil, err
	}
	if err := sw.Write(snapshotsHeader); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{trades: tw, snapshots: sw, tf: tf, sf: sf}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	err := j.trades.Write([]string{
		t.TradeID,
		t.Pair,
		t.Direction,
		f(t.Amount),
		f(t.EntryPrice),
		f(t.ExitPrice),
		t.OpenTime.Format(time.RFC3339),
		t.CloseTime.Format(time.RFC3339),
		f(t.Profit),
		t.Algorithm,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordSnapshot(s PortfolioSnapshot) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	err := j.snapshots.Write([]string{
		s.Time.Format(time.RFC3339),
		f(s.Balance),
		f(s.TotalProfit),
		f(s.TodayProfit),
		strconv.Itoa(s.OpenPositions),
		strconv.Itoa(s.TotalTrades),
		f(s.MarginUsed),
	})
	if err != nil {
		return err
	}
	j.snapshots.Flush()
	return j.snapshots.Error()
}

func (j *CSVJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.snapshots.Flush()
	if err := j.snapshots.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.sf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
