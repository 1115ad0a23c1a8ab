package ledger

import "github.com/rustyeddy/alphafx/market"

// MarginRate is the flat share of notional debited from balance on open.
const MarginRate = 0.01

// Profit is the P/L of amount units moved from entry to exit:
//
//	((exit - entry) / entry) * amount * sign
//
// where sign is +1 for BUY and -1 for SELL. A zero entry yields 0.
func Profit(dir market.Direction, entry, exit, amount float64) float64 {
	if entry == 0 {
		return 0
	}
	return (exit - entry) / entry * amount * dir.Sign()
}

// Margin is the flat margin charged for a trade of amount.
func Margin(amount float64) float64 {
	return amount * MarginRate
}
