package ledger

import (
	"time"

	"github.com/rustyeddy/alphafx/market"
)

type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusClosed  Status = "CLOSED"
	StatusPending Status = "PENDING"
)

// AlgorithmManual labels trades submitted by hand.
const AlgorithmManual = "Manual"

type Trade struct {
	ID         string           `json:"id"`
	Time       time.Time        `json:"timestamp"`
	Pair       string           `json:"pair"`
	Direction  market.Direction `json:"type"`
	Amount     float64          `json:"amount"`
	EntryPrice float64          `json:"entry_price"`
	ExitPrice  *float64         `json:"exit_price"`
	CloseTime  time.Time        `json:"close_time,omitzero"`
	Status     Status           `json:"status"`
	Profit     float64          `json:"profit"` // realized, 0 until closed
	Algorithm  string           `json:"algorithm"`
}

func (t Trade) IsOpen() bool { return t.Status == StatusOpen }

// UnrealizedPL projects an open trade's profit at price. Closed trades report
// their realized profit.
func (t Trade) UnrealizedPL(price float64) float64 {
	if t.Status == StatusClosed {
		return t.Profit
	}
	if t.Status != StatusOpen {
		return 0
	}
	return Profit(t.Direction, t.EntryPrice, price, t.Amount)
}

// Exit returns the exit price and whether the trade has one.
func (t Trade) Exit() (float64, bool) {
	if t.ExitPrice == nil {
		return 0, false
	}
	return *t.ExitPrice, true
}
