package market

import "time"

// Quote is one row of the market overview. Quotes are regenerated on every
// overview tick and never stored.
type Quote struct {
	Pair          string    `json:"pair"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	Spread        float64   `json:"spread"`
	Time          time.Time `json:"time"`
}

// Up reports whether the quote moved up or stayed flat.
func (q Quote) Up() bool { return q.Change >= 0 }

// Overview builds one quote per overview pair. The selected pair is based on
// the live price, the others on their reference price.
func Overview(selected string, livePrice float64, now time.Time, src RandSource) []Quote {
	selected = NormalizePair(selected)

	out := make([]Quote, 0, len(OverviewPairs))
	for _, pair := range OverviewPairs {
		base := Pairs[pair].Reference
		if pair == selected && livePrice > 0 {
			base = livePrice
		}

		change := (src.Float64() - 0.5) * 0.01
		pct := change / base * 100

		out = append(out, Quote{
			Pair:          pair,
			Price:         RoundRate(base + change),
			Change:        RoundRate(change),
			ChangePercent: Round(pct, 3),
			Volume:        int64(src.IntN(50_000_000)) + 10_000_000,
			Spread:        RoundRate(src.Float64()*0.0005 + 0.0001),
			Time:          now,
		})
	}
	return out
}

// Find returns the quote for pair, if present.
func Find(quotes []Quote, pair string) (Quote, bool) {
	pair = NormalizePair(pair)
	for _, q := range quotes {
		if q.Pair == pair {
			return q, true
		}
	}
	return Quote{}, false
}
