package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/alphafx/config"
	"github.com/rustyeddy/alphafx/journal"
	"github.com/rustyeddy/alphafx/ledger"
	"github.com/rustyeddy/alphafx/market"
	"github.com/rustyeddy/alphafx/notify"
)

var (
	ErrBelowMinimum        = errors.New("trade amount below minimum")
	ErrInvalidAmount       = errors.New("trade amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance for margin")
	ErrUnknownAlgorithm    = errors.New("unknown algorithm")
)

// Settings seed a new session.
type Settings struct {
	Balance      float64
	Currency     string
	Pair         string
	TradeAmount  float64
	MinAmount    float64
	Walk         market.WalkConfig
	PriceTick    time.Duration
	OverviewTick time.Duration
}

// DefaultSettings mirror the dashboard: 5000 USD, EUR/USD, trades of 1000
// with a 100 minimum.
func DefaultSettings() Settings {
	return Settings{
		Balance:      5000,
		Currency:     "USD",
		Pair:         "EUR/USD",
		TradeAmount:  1000,
		MinAmount:    100,
		Walk:         market.LiveWalk,
		PriceTick:    time.Second,
		OverviewTick: 2 * time.Second,
	}
}

// SettingsFromConfig converts the loaded config into session settings.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	priceTick, err := cfg.Trading.PriceTickDuration()
	if err != nil {
		return Settings{}, err
	}
	overviewTick, err := cfg.Trading.OverviewTickDuration()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Balance:      cfg.Account.Balance,
		Currency:     cfg.Account.Currency,
		Pair:         cfg.Trading.Pair,
		TradeAmount:  cfg.Trading.DefaultAmount,
		MinAmount:    cfg.Trading.MinAmount,
		Walk:         cfg.Walk.Market(),
		PriceTick:    priceTick,
		OverviewTick: overviewTick,
	}, nil
}

// Observer receives tick results from Run.
type Observer interface {
	PriceTicked(PriceTick)
	QuotesUpdated([]market.Quote)
}

// Options carry the session's collaborators. Zero values are replaced with
// no-op or system implementations.
type Options struct {
	Logger   *zap.Logger
	Notifier notify.Notifier
	Journal  journal.Journal
	Rand     market.RandSource
	Now      func() time.Time
	Observer Observer
}

// Algorithm is one of the dashboard's strategy toggles.
type Algorithm struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

func defaultAlgorithms() []Algorithm {
	return []Algorithm{
		{ID: "sma", Name: "SMA Crossover", Enabled: true},
		{ID: "rsi", Name: "RSI Divergence", Enabled: false},
		{ID: "bollinger", Name: "Bollinger Bands", Enabled: false},
		{ID: "macd", Name: "MACD Signal", Enabled: false},
	}
}

// Session is the TradingSession aggregate: one portfolio, one ledger and the
// live prices they are valued against. Every mutation goes through its
// methods; derived figures are computed on read.
type Session struct {
	mu sync.Mutex

	log      *zap.Logger
	notifier notify.Notifier
	journal  journal.Journal
	src      market.RandSource
	now      func() time.Time
	observer Observer

	portfolio ledger.Portfolio
	ledger    *ledger.Ledger

	walkCfg market.WalkConfig
	walks   map[string]*market.Walk
	pair    string
	quotes  []market.Quote

	tradeAmount float64
	minAmount   float64
	autoTrading bool
	algorithms  []Algorithm

	priceTick    time.Duration
	overviewTick time.Duration
	day          time.Time
}

// New builds a session from settings. An unknown pair is an error.
func New(st Settings, opts Options) (*Session, error) {
	meta, err := market.Lookup(st.Pair)
	if err != nil {
		return nil, err
	}
	if st.Walk.Volatility <= 0 || st.Walk.Band <= 0 {
		st.Walk = market.LiveWalk
	}
	if st.PriceTick <= 0 {
		st.PriceTick = time.Second
	}
	if st.OverviewTick <= 0 {
		st.OverviewTick = 2 * time.Second
	}

	s := &Session{
		log:          opts.Logger,
		notifier:     opts.Notifier,
		journal:      opts.Journal,
		src:          opts.Rand,
		now:          opts.Now,
		observer:     opts.Observer,
		ledger:       ledger.New(),
		walkCfg:      st.Walk,
		walks:        make(map[string]*market.Walk),
		pair:         meta.Name,
		tradeAmount:  st.TradeAmount,
		minAmount:    st.MinAmount,
		algorithms:   defaultAlgorithms(),
		priceTick:    st.PriceTick,
		overviewTick: st.OverviewTick,
		portfolio: ledger.Portfolio{
			Balance:      st.Balance,
			BaseCurrency: st.Currency,
		},
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.notifier == nil {
		s.notifier = notify.Discard
	}
	if s.journal == nil {
		s.journal = journal.Discard
	}
	if s.src == nil {
		s.src = market.NewUnseeded()
	}
	if s.now == nil {
		s.now = time.Now
	}

	now := s.now()
	s.day = dayOf(now)
	s.walkLocked(meta.Name)
	s.quotes = market.Overview(s.pair, s.walks[s.pair].Price(), now, s.src)
	return s, nil
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// rolloverLocked starts a new trading day when the clock crosses midnight.
func (s *Session) rolloverLocked(now time.Time) {
	if d := dayOf(now); d.After(s.day) {
		s.portfolio.ResetToday()
		s.day = d
		s.log.Debug("trading day rolled over", zap.Time("day", d))
	}
}

func (s *Session) walkLocked(pair string) *market.Walk {
	if w, ok := s.walks[pair]; ok {
		return w
	}
	w := market.NewPairWalk(market.Pairs[pair], s.walkCfg, s.src)
	s.walks[pair] = w
	return w
}

func (s *Session) priceLocked(pair string) float64 {
	return s.walkLocked(pair).Price()
}

// emit delivers notifications outside the lock.
func (s *Session) emit(ns ...notify.Notification) {
	for _, n := range ns {
		s.notifier.Notify(n)
	}
}

func (s *Session) note(kind notify.Kind, title, format string, args ...any) notify.Notification {
	return notify.Notification{
		Kind:    kind,
		Title:   title,
		Message: fmt.Sprintf(format, args...),
		Time:    s.now(),
	}
}

func (s *Session) Portfolio() ledger.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.portfolio
}

func (s *Session) Trades() []ledger.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Trades()
}

func (s *Session) Trade(id string) (ledger.Trade, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Get(id)
}

// Pair returns the selected pair.
func (s *Session) Pair() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair
}

// Price returns the live price of pair, or of the selected pair when pair is
// empty.
func (s *Session) Price(pair string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pair == "" {
		return s.priceLocked(s.pair), nil
	}
	meta, err := market.Lookup(pair)
	if err != nil {
		return 0, err
	}
	return s.priceLocked(meta.Name), nil
}

func (s *Session) Quotes() []market.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]market.Quote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

func (s *Session) TradeAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tradeAmount
}

func (s *Session) MinTradeAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minAmount
}

func (s *Session) AutoTrading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoTrading
}

func (s *Session) Algorithms() []Algorithm {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Algorithm, len(s.algorithms))
	copy(out, s.algorithms)
	return out
}

// SetObserver replaces the Run observer.
func (s *Session) SetObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
}

func (s *Session) currentObserver() Observer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observer
}

// SelectPair switches the live pair. Its walk is kept when switching back.
func (s *Session) SelectPair(pair string) error {
	meta, err := market.Lookup(pair)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = meta.Name
	s.walkLocked(meta.Name)
	return nil
}

func (s *Session) SetTradeAmount(amount float64) error {
	if !(amount > 0) {
		return fmt.Errorf("set trade amount %v: %w", amount, ErrInvalidAmount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tradeAmount = amount
	return nil
}

func (s *Session) SetMinTradeAmount(amount float64) error {
	if !(amount > 0) {
		return fmt.Errorf("set minimum trade amount %v: %w", amount, ErrInvalidAmount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minAmount = amount
	return nil
}

// SetAutoTrading flips the auto-trading flag and announces the new mode.
// Setting the current value again is silent.
func (s *Session) SetAutoTrading(enabled bool) {
	s.mu.Lock()
	if s.autoTrading == enabled {
		s.mu.Unlock()
		return
	}
	s.autoTrading = enabled
	var n notify.Notification
	if enabled {
		n = s.note(notify.Info, "Auto Trading Enabled", "AI algorithms will now execute trades automatically")
	} else {
		n = s.note(notify.Info, "Auto Trading Disabled", "Manual trading mode activated")
	}
	s.mu.Unlock()

	s.log.Info("auto trading toggled", zap.Bool("enabled", enabled))
	s.emit(n)
}

func (s *Session) SetAlgorithm(id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.algorithms {
		if s.algorithms[i].ID == id {
			s.algorithms[i].Enabled = enabled
			return nil
		}
	}
	return fmt.Errorf("algorithm %q: %w", id, ErrUnknownAlgorithm)
}

// pricedPairs returns the pairs that have a walk, sorted so ticks draw from
// the random source in a stable order.
func (s *Session) pricedPairs() []string {
	pairs := make([]string, 0, len(s.walks))
	for p := range s.walks {
		pairs = append(pairs, p)
	}
	sort.Strings(pairs)
	return pairs
}
