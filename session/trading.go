package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/alphafx/journal"
	"github.com/rustyeddy/alphafx/ledger"
	"github.com/rustyeddy/alphafx/market"
	"github.com/rustyeddy/alphafx/notify"
	"github.com/rustyeddy/alphafx/recommend"
)

// OpenRequest is a market order. An empty Pair trades the selected pair and
// a zero Amount uses the session's trade amount.
type OpenRequest struct {
	Pair      string           `json:"pair"`
	Direction market.Direction `json:"direction"`
	Amount    float64          `json:"amount"`
	Algorithm string           `json:"algorithm"`
}

// OpenTrade opens a trade at the pair's live price and debits the flat
// margin. Rejected orders leave the ledger and portfolio untouched.
func (s *Session) OpenTrade(ctx context.Context, req OpenRequest) (ledger.Trade, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Trade{}, err
	}
	dir, err := market.ParseDirection(string(req.Direction))
	if err != nil {
		return ledger.Trade{}, fmt.Errorf("open trade: %w", err)
	}

	s.mu.Lock()

	pair := s.pair
	if req.Pair != "" {
		meta, err := market.Lookup(req.Pair)
		if err != nil {
			s.mu.Unlock()
			return ledger.Trade{}, fmt.Errorf("open trade: %w", err)
		}
		pair = meta.Name
	}

	amount := req.Amount
	if amount == 0 {
		amount = s.tradeAmount
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		n := s.note(notify.Warning, "Trade Too Small", "Minimum trade amount is %g %s", s.minAmount, s.portfolio.BaseCurrency)
		s.mu.Unlock()
		s.emit(n)
		return ledger.Trade{}, fmt.Errorf("open trade %v: %w", amount, ErrInvalidAmount)
	}

	if amount < s.minAmount {
		n := s.note(notify.Warning, "Trade Too Small", "Minimum trade amount is %g %s", s.minAmount, s.portfolio.BaseCurrency)
		minAmount := s.minAmount
		s.mu.Unlock()
		s.emit(n)
		return ledger.Trade{}, fmt.Errorf("open trade %v (minimum %v): %w", amount, minAmount, ErrBelowMinimum)
	}

	if margin := ledger.Margin(amount); margin > s.portfolio.Balance {
		n := s.note(notify.Error, "Insufficient Balance", "Margin %s exceeds balance %s %s",
			market.FormatCash(margin), market.FormatCash(s.portfolio.Balance), s.portfolio.BaseCurrency)
		s.mu.Unlock()
		s.emit(n)
		return ledger.Trade{}, fmt.Errorf("open trade %v: %w", amount, ErrInsufficientBalance)
	}

	now := s.now()
	s.rolloverLocked(now)

	price := s.priceLocked(pair)
	t := s.ledger.Open(pair, dir, amount, price, req.Algorithm, now)
	s.portfolio.ApplyOpen(amount)
	s.snapshotLocked(now)

	verb := "Bought"
	if dir == market.Sell {
		verb = "Sold"
	}
	n := s.note(notify.Success, string(dir)+" Order Executed", "%s %g %s at %s", verb, amount, pair, market.FormatRate(price))
	s.mu.Unlock()

	s.log.Info("trade opened",
		zap.String("id", t.ID),
		zap.String("pair", pair),
		zap.String("direction", string(dir)),
		zap.Float64("amount", amount),
		zap.Float64("price", price),
		zap.String("algorithm", t.Algorithm),
	)
	s.emit(n)
	return t, nil
}

// CloseTrade books an open trade at its pair's live price. Unknown and
// already closed trades are errors and change nothing.
func (s *Session) CloseTrade(ctx context.Context, tradeID string) (ledger.Trade, error) {
	if err := ctx.Err(); err != nil {
		return ledger.Trade{}, err
	}

	s.mu.Lock()

	open, ok := s.ledger.Get(tradeID)
	if !ok {
		s.mu.Unlock()
		return ledger.Trade{}, fmt.Errorf("close trade %q: %w", tradeID, ledger.ErrTradeNotFound)
	}

	now := s.now()
	t, err := s.ledger.Close(tradeID, s.priceLocked(open.Pair), now)
	if err != nil {
		s.mu.Unlock()
		return t, err
	}

	s.rolloverLocked(now)
	s.portfolio.ApplyClose(t.Profit)

	exit, _ := t.Exit()
	if err := s.journal.RecordTrade(journal.TradeRecord{
		TradeID:    t.ID,
		Pair:       t.Pair,
		Direction:  string(t.Direction),
		Amount:     t.Amount,
		EntryPrice: t.EntryPrice,
		ExitPrice:  exit,
		OpenTime:   t.Time,
		CloseTime:  t.CloseTime,
		Profit:     t.Profit,
		Algorithm:  t.Algorithm,
	}); err != nil {
		s.log.Error("journal trade failed", zap.String("id", t.ID), zap.Error(err))
	}
	s.snapshotLocked(now)

	n := s.note(notify.Success, "Trade Closed", "Trade %s closed. P/L %s", t.ID, market.FormatCash(t.Profit))
	s.mu.Unlock()

	s.log.Info("trade closed",
		zap.String("id", t.ID),
		zap.String("pair", t.Pair),
		zap.Float64("exit", exit),
		zap.Float64("profit", t.Profit),
	)
	s.emit(n)
	return t, nil
}

// UnrealizedPnL values an open trade at its pair's live price. Closed trades
// return their realized profit.
func (s *Session) UnrealizedPnL(tradeID string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.ledger.Get(tradeID)
	if !ok {
		return 0, fmt.Errorf("unrealized p/l %q: %w", tradeID, ledger.ErrTradeNotFound)
	}
	return t.UnrealizedPL(s.priceLocked(t.Pair)), nil
}

// ApplyRecommendations opens one trade per recommendation, in order. It is
// not atomic: trades opened before a failure stay open. The returned error
// joins every failure.
func (s *Session) ApplyRecommendations(ctx context.Context, recs []recommend.Recommendation) ([]ledger.Trade, error) {
	var (
		opened []ledger.Trade
		errs   []error
	)
	for _, r := range recs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		t, err := s.OpenTrade(ctx, OpenRequest{
			Pair:      r.Pair,
			Direction: r.Action,
			Amount:    r.Amount,
			Algorithm: "AI Recommendation",
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s %s %v: %w", r.Action, r.Pair, r.Amount, err))
			continue
		}
		opened = append(opened, t)
	}
	return opened, errors.Join(errs...)
}

func (s *Session) snapshotLocked(now time.Time) {
	snap := journal.PortfolioSnapshot{
		Time:          now,
		Balance:       s.portfolio.Balance,
		TotalProfit:   s.portfolio.TotalProfit,
		TodayProfit:   s.portfolio.TodayProfit,
		OpenPositions: s.portfolio.OpenPositions,
		TotalTrades:   s.portfolio.TotalTrades,
		MarginUsed:    ledger.Margin(s.ledger.OpenNotional()),
	}
	if err := s.journal.RecordSnapshot(snap); err != nil {
		s.log.Error("journal snapshot failed", zap.Error(err))
	}
}

// TradeView is a trade valued at the live price.
type TradeView struct {
	ledger.Trade
	CurrentPrice float64 `json:"current_price"`
	UnrealizedPL float64 `json:"unrealized_pl"`
}

// Snapshot is a consistent read of the whole session.
type Snapshot struct {
	Time               time.Time        `json:"time"`
	Portfolio          ledger.Portfolio `json:"portfolio"`
	Pair               string           `json:"pair"`
	Price              float64          `json:"price"`
	Trades             []TradeView      `json:"trades"`
	MarginUsed         float64          `json:"margin_used"`
	UnrealizedPL       float64          `json:"unrealized_pl"`
	Equity             float64          `json:"equity"`
	RemainingBalance   float64          `json:"remaining_balance"`
	ProfitPercent      float64          `json:"profit_percent"`
	TodayProfitPercent float64          `json:"today_profit_percent"`
	TradeAmount        float64          `json:"trade_amount"`
	MinTradeAmount     float64          `json:"min_trade_amount"`
	AutoTrading        bool             `json:"auto_trading"`
	Algorithms         []Algorithm      `json:"algorithms"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Time:               s.now(),
		Portfolio:          s.portfolio,
		Pair:               s.pair,
		Price:              s.priceLocked(s.pair),
		MarginUsed:         ledger.Margin(s.ledger.OpenNotional()),
		RemainingBalance:   s.portfolio.RemainingBalance(s.ledger),
		ProfitPercent:      s.portfolio.ProfitPercent(),
		TodayProfitPercent: s.portfolio.TodayProfitPercent(),
		TradeAmount:        s.tradeAmount,
		MinTradeAmount:     s.minAmount,
		AutoTrading:        s.autoTrading,
		Algorithms:         append([]Algorithm(nil), s.algorithms...),
	}

	trades := s.ledger.Trades()
	snap.Trades = make([]TradeView, 0, len(trades))
	for _, t := range trades {
		v := TradeView{Trade: t, UnrealizedPL: t.UnrealizedPL(s.priceLocked(t.Pair))}
		if t.IsOpen() {
			v.CurrentPrice = s.priceLocked(t.Pair)
			snap.UnrealizedPL += v.UnrealizedPL
		}
		snap.Trades = append(snap.Trades, v)
	}
	snap.Equity = s.portfolio.Balance + snap.UnrealizedPL
	return snap
}
