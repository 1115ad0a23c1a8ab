package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/alphafx/market"
)

// seqRand replays Float64 draws in order and always picks index 0.
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *seqRand) IntN(int) int { return 0 }

func TestGenerateSortedAndBounded(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		recs := Generate(5000, market.NewRand(seed))
		require.Len(t, recs, Count)

		for i, r := range recs {
			assert.Contains(t, Pairs, r.Pair)
			assert.True(t, r.Action.Valid())
			assert.GreaterOrEqual(t, r.Confidence, 75.0)
			assert.LessOrEqual(t, r.Confidence, 95.0)
			assert.GreaterOrEqual(t, r.ProfitRatio, 1.5)
			assert.LessOrEqual(t, r.ProfitRatio, 4.5)
			assert.GreaterOrEqual(t, r.Amount, 500.0)
			assert.LessOrEqual(t, r.Amount, 1500.0)
			assert.Contains(t, Timeframes, r.Timeframe)
			assert.NotEmpty(t, r.Reasoning)
			if i > 0 {
				assert.GreaterOrEqual(t, recs[i-1].Confidence, r.Confidence)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(10000, market.NewRand(9))
	b := Generate(10000, market.NewRand(9))
	assert.Equal(t, a, b)
}

func TestGenerateDraws(t *testing.T) {
	// Per recommendation: action, confidence, ratio, amount.
	src := &seqRand{vals: []float64{
		0.9, 0.0, 0.0, 0.0,
		0.1, 1.0, 1.0, 1.0,
		0.6, 0.5, 0.5, 0.5,
	}}
	recs := Generate(1000, src)
	require.Len(t, recs, 3)

	assert.Equal(t, 95.0, recs[0].Confidence)
	assert.Equal(t, market.Sell, recs[0].Action)
	assert.Equal(t, 4.5, recs[0].ProfitRatio)
	assert.Equal(t, 300.0, recs[0].Amount)
	assert.Equal(t, "USD strength expected, EUR weakness", recs[0].Reasoning)

	assert.Equal(t, 85.0, recs[1].Confidence)
	assert.Equal(t, market.Buy, recs[1].Action)
	assert.Equal(t, 3.0, recs[1].ProfitRatio)
	assert.Equal(t, 200.0, recs[1].Amount)

	assert.Equal(t, 75.0, recs[2].Confidence)
	assert.Equal(t, 1.5, recs[2].ProfitRatio)
	assert.Equal(t, 100.0, recs[2].Amount)
	assert.Equal(t, "Strong EUR fundamentals, ECB policy support", recs[2].Reasoning)
	assert.Equal(t, "5 minutes", recs[2].Timeframe)
}

func TestReason(t *testing.T) {
	assert.Equal(t, "Risk-off sentiment, JPY safe haven", Reason("usd_jpy", market.Sell))
	assert.Equal(t, fallbackReason, Reason("NZD/USD", market.Buy))
}

func TestExpectedProfitAndShare(t *testing.T) {
	r := Recommendation{Amount: 1000, ProfitRatio: 2.5}
	assert.InDelta(t, 25.0, r.ExpectedProfit(), 1e-9)
	assert.InDelta(t, 20.0, r.PortfolioShare(5000), 1e-9)
	assert.Zero(t, r.PortfolioShare(0))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Recommendation{
		{Action: market.Buy, Confidence: 90, ProfitRatio: 4},
		{Action: market.Sell, Confidence: 80, ProfitRatio: 4},
	})
	assert.Equal(t, "Bullish", s.Sentiment)
	assert.Equal(t, 85.0, s.Confidence)
	assert.Equal(t, "High", s.Risk)

	s = Summarize([]Recommendation{
		{Action: market.Sell, Confidence: 80, ProfitRatio: 2},
		{Action: market.Sell, Confidence: 80, ProfitRatio: 2},
		{Action: market.Buy, Confidence: 80, ProfitRatio: 2},
	})
	assert.Equal(t, "Bearish", s.Sentiment)
	assert.Equal(t, "Low", s.Risk)

	assert.Equal(t, "Neutral", Summarize(nil).Sentiment)
}
