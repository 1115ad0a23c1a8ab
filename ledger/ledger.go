package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/alphafx/internal/id"
	"github.com/rustyeddy/alphafx/market"
)

var (
	ErrTradeNotFound = errors.New("trade not found")
	ErrTradeClosed   = errors.New("trade already closed")
)

// Ledger is the ordered collection of trades, newest first. It is not safe
// for concurrent use; the owning session serializes access.
type Ledger struct {
	trades []*Trade
	byID   map[string]*Trade
}

func New() *Ledger {
	return &Ledger{byID: make(map[string]*Trade)}
}

// Open prepends a new OPEN trade and returns a copy of it.
func (l *Ledger) Open(pair string, dir market.Direction, amount, price float64, algorithm string, now time.Time) Trade {
	if algorithm == "" {
		algorithm = AlgorithmManual
	}
	t := &Trade{
		ID:         id.At(now),
		Time:       now,
		Pair:       pair,
		Direction:  dir,
		Amount:     amount,
		EntryPrice: price,
		Status:     StatusOpen,
		Algorithm:  algorithm,
	}

	l.trades = append([]*Trade{t}, l.trades...)
	l.byID[t.ID] = t
	return *t
}

// Close books the trade at price. Exit price and profit are fixed by the
// first successful close and never change afterwards.
func (l *Ledger) Close(tradeID string, price float64, now time.Time) (Trade, error) {
	t, ok := l.byID[tradeID]
	if !ok {
		return Trade{}, fmt.Errorf("close trade %q: %w", tradeID, ErrTradeNotFound)
	}
	if t.Status != StatusOpen {
		return *t, fmt.Errorf("close trade %q: %w", tradeID, ErrTradeClosed)
	}

	exit := price
	t.ExitPrice = &exit
	t.CloseTime = now
	t.Profit = Profit(t.Direction, t.EntryPrice, exit, t.Amount)
	t.Status = StatusClosed
	return *t, nil
}

func (l *Ledger) Get(tradeID string) (Trade, bool) {
	t, ok := l.byID[tradeID]
	if !ok {
		return Trade{}, false
	}
	return *t, true
}

func (l *Ledger) Len() int { return len(l.trades) }

// Trades returns copies of every trade, newest first.
func (l *Ledger) Trades() []Trade {
	out := make([]Trade, 0, len(l.trades))
	for _, t := range l.trades {
		out = append(out, *t)
	}
	return out
}

// OpenTrades returns copies of the open trades, newest first.
func (l *Ledger) OpenTrades() []Trade {
	var out []Trade
	for _, t := range l.trades {
		if t.Status == StatusOpen {
			out = append(out, *t)
		}
	}
	return out
}

// ClosedProfit sums realized profit over closed trades.
func (l *Ledger) ClosedProfit() float64 {
	var sum float64
	for _, t := range l.trades {
		if t.Status == StatusClosed {
			sum += t.Profit
		}
	}
	return sum
}

// OpenNotional sums the amount of open trades.
func (l *Ledger) OpenNotional() float64 {
	var sum float64
	for _, t := range l.trades {
		if t.Status == StatusOpen {
			sum += t.Amount
		}
	}
	return sum
}
