package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/alphafx/journal"
	"github.com/rustyeddy/alphafx/ledger"
	"github.com/rustyeddy/alphafx/market"
	"github.com/rustyeddy/alphafx/recommend"
	"github.com/rustyeddy/alphafx/session"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted trading session",
	Long: `Run a short scripted session to show the accounting rules:

  1. Worked P/L examples for a BUY and a SELL
  2. Open a BUY at the live price, let the market move, close it
  3. Open and close a SELL
  4. Try a trade below the minimum amount (rejected)
  5. Apply a set of mock AI recommendations

The session uses seed 42 unless --seed is given.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

var demoTicks int

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().IntVar(&demoTicks, "ticks", 30, "price ticks between open and close")
}

func runDemo(cmd *cobra.Command, args []string) error {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	s, err := newSession(printNotifier(cmd), j)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "== Worked examples")
	fmt.Fprintf(out, "  BUY 1000 @ 1.08470 -> 1.09000: %s\n", market.FormatSigned(ledger.Profit(market.Buy, 1.0847, 1.09, 1000)))
	fmt.Fprintf(out, "  SELL 500 @ 1.20000 -> 1.19000: %s\n", market.FormatSigned(ledger.Profit(market.Sell, 1.2, 1.19, 500)))

	fmt.Fprintln(out, "\n== Starting session")
	printPortfolio(out, s.Snapshot())

	for _, dir := range []market.Direction{market.Buy, market.Sell} {
		fmt.Fprintf(out, "\n== %s %s\n", dir, s.Pair())
		t, err := s.OpenTrade(ctx, session.OpenRequest{Direction: dir})
		if err != nil {
			return err
		}
		for i := 0; i < demoTicks; i++ {
			s.Tick()
		}
		pl, err := s.UnrealizedPnL(t.ID)
		if err != nil {
			return err
		}
		price, _ := s.Price(t.Pair)
		fmt.Fprintf(out, "  after %d ticks: price %s, unrealized %s\n", demoTicks, market.FormatRate(price), market.FormatSigned(pl))
		if _, err := s.CloseTrade(ctx, t.ID); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\n== Below minimum")
	_, err = s.OpenTrade(ctx, session.OpenRequest{Direction: market.Buy, Amount: s.MinTradeAmount() / 2})
	if !errors.Is(err, session.ErrBelowMinimum) {
		return fmt.Errorf("expected a below-minimum rejection, got %v", err)
	}
	fmt.Fprintf(out, "  rejected: %v\n", err)

	fmt.Fprintln(out, "\n== AI recommendations")
	recs := recommend.Generate(s.Portfolio().Balance, randSource())
	printRecommendations(out, recs)
	if _, err := s.ApplyRecommendations(ctx, recs); err != nil {
		fmt.Fprintf(out, "  some recommendations failed: %v\n", err)
	}

	fmt.Fprintln(out, "\n== Final portfolio")
	printPortfolio(out, s.Snapshot())
	return nil
}

func printPortfolio(w io.Writer, snap session.Snapshot) {
	p := snap.Portfolio
	fmt.Fprintf(w, "  balance       %s %s\n", market.FormatCash(p.Balance), p.BaseCurrency)
	fmt.Fprintf(w, "  total profit  %s (%s%%)\n", market.FormatSigned(p.TotalProfit), market.FormatCash(snap.ProfitPercent))
	fmt.Fprintf(w, "  today profit  %s\n", market.FormatSigned(p.TodayProfit))
	fmt.Fprintf(w, "  positions     %d open / %d total\n", p.OpenPositions, p.TotalTrades)
	fmt.Fprintf(w, "  margin used   %s\n", market.FormatCash(snap.MarginUsed))
	fmt.Fprintf(w, "  unrealized    %s\n", market.FormatSigned(snap.UnrealizedPL))
	fmt.Fprintf(w, "  equity        %s\n", market.FormatCash(snap.Equity))
}
