package recommend

import (
	"math"
	"sort"

	"github.com/rustyeddy/alphafx/market"
)

// Recommendation is a mock "AI" trade suggestion. Nothing is learned from
// data; every field is drawn from the random source.
type Recommendation struct {
	Pair        string           `json:"pair"`
	Action      market.Direction `json:"action"`
	Amount      float64          `json:"amount"`
	Confidence  float64          `json:"confidence"`   // percent, 75-95
	ProfitRatio float64          `json:"profit_ratio"` // expected percent, 1.5-4.5
	Reasoning   string           `json:"reasoning"`
	Timeframe   string           `json:"timeframe"`
}

// Count is how many recommendations Generate returns.
const Count = 3

var Pairs = []string{"EUR/USD", "GBP/USD", "USD/JPY", "USD/CHF", "AUD/USD"}

var Timeframes = []string{"5 minutes", "15 minutes", "30 minutes", "1 hour"}

const fallbackReason = "Technical analysis indicates favorable conditions"

var reasons = map[string]map[market.Direction]string{
	"EUR/USD": {market.Buy: "Strong EUR fundamentals, ECB policy support", market.Sell: "USD strength expected, EUR weakness"},
	"GBP/USD": {market.Buy: "GBP oversold, technical bounce expected", market.Sell: "Brexit uncertainty, USD strength"},
	"USD/JPY": {market.Buy: "BoJ intervention unlikely, yield differential", market.Sell: "Risk-off sentiment, JPY safe haven"},
	"USD/CHF": {market.Buy: "USD strength, SNB dovish stance", market.Sell: "CHF safe haven demand increasing"},
	"AUD/USD": {market.Buy: "Commodity prices rising, RBA hawkish", market.Sell: "China slowdown concerns, USD strength"},
}

// Reason returns the canned rationale for a pair and action.
func Reason(pair string, action market.Direction) string {
	if byAction, ok := reasons[market.NormalizePair(pair)]; ok {
		if r, ok := byAction[action]; ok {
			return r
		}
	}
	return fallbackReason
}

// Generate draws Count recommendations sized against balance, sorted by
// descending confidence.
func Generate(balance float64, src market.RandSource) []Recommendation {
	recs := make([]Recommendation, 0, Count)
	for i := 0; i < Count; i++ {
		pair := Pairs[src.IntN(len(Pairs))]
		action := market.Sell
		if src.Float64() > 0.5 {
			action = market.Buy
		}
		confidence := 75 + src.Float64()*20
		ratio := 1.5 + src.Float64()*3
		amount := math.Floor(balance*0.1 + src.Float64()*balance*0.2)

		recs = append(recs, Recommendation{
			Pair:        pair,
			Action:      action,
			Amount:      amount,
			Confidence:  market.Round(confidence, 1),
			ProfitRatio: market.Round(ratio, 2),
			Reasoning:   Reason(pair, action),
			Timeframe:   Timeframes[src.IntN(len(Timeframes))],
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	return recs
}

// ExpectedProfit is the amount the recommendation projects to earn.
func (r Recommendation) ExpectedProfit() float64 {
	return r.Amount * r.ProfitRatio / 100
}

// PortfolioShare is the recommended amount as a percentage of balance.
func (r Recommendation) PortfolioShare(balance float64) float64 {
	if balance == 0 {
		return 0
	}
	return r.Amount / balance * 100
}

// Summary is the headline shown above the recommendation list.
type Summary struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Risk       string  `json:"risk"`
}

func Summarize(recs []Recommendation) Summary {
	if len(recs) == 0 {
		return Summary{Sentiment: "Neutral", Risk: "Low"}
	}

	var buys, sells int
	var sum, ratio float64
	for _, r := range recs {
		if r.Action == market.Buy {
			buys++
		} else {
			sells++
		}
		sum += r.Confidence
		ratio += r.ProfitRatio
	}

	s := Summary{
		Sentiment:  "Bearish",
		Confidence: market.Round(sum/float64(len(recs)), 1),
		Risk:       "Medium",
	}
	if buys >= sells {
		s.Sentiment = "Bullish"
	}
	switch avg := ratio / float64(len(recs)); {
	case avg < 2.5:
		s.Risk = "Low"
	case avg > 3.5:
		s.Risk = "High"
	}
	return s
}
