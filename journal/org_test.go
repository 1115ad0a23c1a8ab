package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	closeT := time.Date(2024, 3, 15, 14, 20, 30, 0, time.UTC)
	trade := sampleTrade("01HS0000000000000ABCDEFGH", closeT, 4.886)

	result := FormatTradeOrg(trade)

	assert.Contains(t, result, "** Trade: BUY EUR/USD (ABCDEFGH)")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":TRADE_ID: 01HS0000000000000ABCDEFGH")
	assert.Contains(t, result, ":PAIR: EUR/USD")
	assert.Contains(t, result, ":DIRECTION: BUY")
	assert.Contains(t, result, ":AMOUNT: 1000.00")
	assert.Contains(t, result, ":ENTRY_PRICE: 1.08470")
	assert.Contains(t, result, ":EXIT_PRICE: 1.09000")
	assert.Contains(t, result, ":OPEN_TIME: 2024-03-15T13:20:30Z")
	assert.Contains(t, result, ":CLOSE_TIME: 2024-03-15T14:20:30Z")
	assert.Contains(t, result, ":PROFIT: 4.89")
	assert.Contains(t, result, ":ALGORITHM: Manual")
	assert.True(t, strings.HasSuffix(result, ":END:\n"))
}

func TestFormatTradeOrgShortID(t *testing.T) {
	t.Parallel()

	trade := sampleTrade("short", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	assert.Contains(t, FormatTradeOrg(trade), "(short)")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "# no trades", FormatTradesOrg(nil))

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := FormatTradesOrg([]TradeRecord{
		sampleTrade("T1", day, 10),
		sampleTrade("T2", day, -5),
	})

	assert.Equal(t, 2, strings.Count(out, "** Trade:"))
	assert.Contains(t, out, "# 2 trades, net 5.00, win rate 50.0%")
}
