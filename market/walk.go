package market

import "time"

// WalkConfig holds the random-walk parameters in EUR/USD-sized units.
// Pair meta Scale multiplies both.
type WalkConfig struct {
	Volatility float64 `json:"volatility" yaml:"volatility"`
	Band       float64 `json:"band" yaml:"band"`
}

// LiveWalk drives the dashboard price once per tick.
var LiveWalk = WalkConfig{Volatility: 0.001, Band: 0.01}

// HistoryWalk builds the synthetic chart history.
var HistoryWalk = WalkConfig{Volatility: 0.0001, Band: 0.01}

const (
	momentumDecay  = 0.8
	momentumWeight = 0.2
)

// Walk is a bounded momentum random walk around a reference price:
//
//	momentum = 0.8*momentum + 0.2*(rand-0.5)*volatility
//	price    = clamp(price+momentum, ref-band, ref+band)
type Walk struct {
	ref      float64
	vol      float64
	band     float64
	price    float64
	momentum float64
	src      RandSource
}

// NewWalk starts a walk at start, bounded around ref.
func NewWalk(ref, start float64, cfg WalkConfig, src RandSource) *Walk {
	w := &Walk{
		ref:  ref,
		vol:  cfg.Volatility,
		band: cfg.Band,
		src:  src,
	}
	w.price = w.clamp(start)
	return w
}

// NewPairWalk starts a walk at the pair's reference price, scaling cfg by the
// pair's Scale.
func NewPairWalk(meta PairMeta, cfg WalkConfig, src RandSource) *Walk {
	scale := meta.Scale
	if scale <= 0 {
		scale = 1
	}
	cfg.Volatility *= scale
	cfg.Band *= scale
	return NewWalk(meta.Reference, meta.Reference, cfg, src)
}

// Step advances the walk and returns the new price rounded to 5 dp.
func (w *Walk) Step() float64 {
	change := (w.src.Float64() - 0.5) * w.vol
	w.momentum = w.momentum*momentumDecay + change*momentumWeight
	w.price = w.clamp(w.price + w.momentum)
	return RoundRate(w.price)
}

// Price returns the current price rounded to 5 dp.
func (w *Walk) Price() float64 { return RoundRate(w.price) }

func (w *Walk) Reference() float64 { return w.ref }

// Low and High are the band edges.
func (w *Walk) Low() float64  { return w.ref - w.band }
func (w *Walk) High() float64 { return w.ref + w.band }

func (w *Walk) clamp(p float64) float64 {
	if p < w.ref-w.band {
		return w.ref - w.band
	}
	if p > w.ref+w.band {
		return w.ref + w.band
	}
	return p
}

// Sample is one point of the chart history.
type Sample struct {
	Time   time.Time `json:"time"`
	Price  float64   `json:"price"`
	SMA    float64   `json:"sma"`
	Volume int64     `json:"volume"`
}

const (
	HistoryLen       = 50
	HistorySMAPeriod = 10
	historyOffset    = 0.002
)

// History generates n one-minute samples ending at end, anchored on the
// live price. The walk starts 0.002 below anchor (scaled) and is bounded
// around it. A non-positive anchor falls back to the pair's reference.
func History(meta PairMeta, anchor float64, n int, end time.Time, src RandSource) []Sample {
	if n <= 0 {
		return nil
	}
	if !(anchor > 0) {
		anchor = meta.Reference
	}
	scale := meta.Scale
	if scale <= 0 {
		scale = 1
	}
	cfg := WalkConfig{
		Volatility: HistoryWalk.Volatility * scale,
		Band:       HistoryWalk.Band * scale,
	}
	w := NewWalk(anchor, anchor-historyOffset*scale, cfg, src)

	prices := make([]float64, 0, n)
	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		p := w.Step()
		prices = append(prices, p)

		period := HistorySMAPeriod
		if len(prices) < period {
			period = len(prices)
		}
		sma, _ := SMA(prices, period)

		out = append(out, Sample{
			Time:   end.Add(-time.Duration(n-1-i) * time.Minute),
			Price:  p,
			SMA:    RoundRate(sma),
			Volume: int64(src.IntN(500_000)) + 750_000,
		})
	}
	return out
}
