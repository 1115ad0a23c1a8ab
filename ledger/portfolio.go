package ledger

// Portfolio is the account summary the dashboard shows. Only ApplyOpen and
// ApplyClose mutate it.
type Portfolio struct {
	Balance       float64 `json:"balance"`
	BaseCurrency  string  `json:"base_currency"`
	TotalProfit   float64 `json:"total_profit"`
	TodayProfit   float64 `json:"today_profit"`
	OpenPositions int     `json:"open_positions"`
	TotalTrades   int     `json:"total_trades"`
}

// ApplyOpen debits the flat margin and bumps both counters.
func (p *Portfolio) ApplyOpen(amount float64) {
	p.Balance -= Margin(amount)
	p.OpenPositions++
	p.TotalTrades++
}

// ApplyClose credits realized profit. Open positions never go below zero.
// The margin debited on open is not returned to balance.
func (p *Portfolio) ApplyClose(profit float64) {
	p.Balance += profit
	p.TotalProfit += profit
	p.TodayProfit += profit
	if p.OpenPositions > 0 {
		p.OpenPositions--
	}
}

// ResetToday starts a new trading day.
func (p *Portfolio) ResetToday() { p.TodayProfit = 0 }

// ProfitPercent is total profit as a percentage of balance.
func (p Portfolio) ProfitPercent() float64 {
	if p.Balance == 0 {
		return 0
	}
	return p.TotalProfit / p.Balance * 100
}

// TodayProfitPercent is today's profit as a percentage of balance.
func (p Portfolio) TodayProfitPercent() float64 {
	if p.Balance == 0 {
		return 0
	}
	return p.TodayProfit / p.Balance * 100
}

// RemainingBalance is balance plus closed profit less the margin held by
// open trades, as shown on the portfolio card.
func (p Portfolio) RemainingBalance(l *Ledger) float64 {
	return p.Balance + l.ClosedProfit() - Margin(l.OpenNotional())
}
