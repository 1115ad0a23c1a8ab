package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/alphafx/market"
)

// PriceTick is the live price of the selected pair after one step.
type PriceTick struct {
	Pair  string    `json:"pair"`
	Price float64   `json:"price"`
	Time  time.Time `json:"time"`
}

// Tick advances every priced pair by one walk step and returns the selected
// pair's new price. It is the unit the price timer drives; tests call it
// directly.
func (s *Session) Tick() PriceTick {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.rolloverLocked(now)
	for _, p := range s.pricedPairs() {
		s.walks[p].Step()
	}
	return PriceTick{Pair: s.pair, Price: s.priceLocked(s.pair), Time: now}
}

// TickOverview regenerates the market overview quotes around the live price.
func (s *Session) TickOverview() []market.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes = market.Overview(s.pair, s.priceLocked(s.pair), s.now(), s.src)
	out := make([]market.Quote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

// History builds the chart history for the selected pair, ending now around
// its live price.
func (s *Session) History(n int) []market.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return market.History(market.Pairs[s.pair], s.priceLocked(s.pair), n, s.now(), s.src)
}

// Run drives Tick and TickOverview from two independent tickers until ctx
// is done. Results go to the Observer, if one is set.
func (s *Session) Run(ctx context.Context) error {
	priceT := time.NewTicker(s.priceTick)
	defer priceT.Stop()
	overviewT := time.NewTicker(s.overviewTick)
	defer overviewT.Stop()

	s.log.Info("session running",
		zap.String("pair", s.Pair()),
		zap.Duration("price_tick", s.priceTick),
		zap.Duration("overview_tick", s.overviewTick),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("session stopped")
			return ctx.Err()
		case <-priceT.C:
			pt := s.Tick()
			if o := s.currentObserver(); o != nil {
				o.PriceTicked(pt)
			}
		case <-overviewT.C:
			qs := s.TickOverview()
			if o := s.currentObserver(); o != nil {
				o.QuotesUpdated(qs)
			}
		}
	}
}
