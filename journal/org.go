package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode block with the
// structured facts in a PROPERTIES drawer.
func FormatTradeOrg(t TradeRecord) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Direction, t.Pair, shortID(t.TradeID))
	open := t.OpenTime.UTC().Format(time.RFC3339)
	close := t.CloseTime.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.TradeID))
	b.WriteString(fmt.Sprintf(":PAIR: %s\n", t.Pair))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":AMOUNT: %.2f\n", t.Amount))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.5f\n", t.EntryPrice))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.5f\n", t.ExitPrice))
	b.WriteString(fmt.Sprintf(":OPEN_TIME: %s\n", open))
	b.WriteString(fmt.Sprintf(":CLOSE_TIME: %s\n", close))
	b.WriteString(fmt.Sprintf(":PROFIT: %.2f\n", t.Profit))
	b.WriteString(fmt.Sprintf(":ALGORITHM: %s\n", t.Algorithm))
	b.WriteString(":END:\n")

	return b.String()
}

// FormatTradesOrg renders multiple trades followed by a summary line.
func FormatTradesOrg(trades []TradeRecord) string {
	if len(trades) == 0 {
		return "# no trades"
	}

	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}

	s := Summarize(trades)
	b.WriteString(fmt.Sprintf("\n# %d trades, net %.2f, win rate %.1f%%\n", s.Trades, s.NetProfit, s.WinRate))
	return b.String()
}

// shortID keeps the tail of the ID; ULIDs created close together share
// their leading timestamp characters.
func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
