package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/alphafx/journal"
	"github.com/rustyeddy/alphafx/market"
	"github.com/rustyeddy/alphafx/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show mock AI trade recommendations",
	Long: `Draw three recommendations sized against the account balance, sorted by
confidence. With --apply each one is opened as a trade in a fresh session.`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

var recommendApply bool

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().BoolVar(&recommendApply, "apply", false, "open a trade for every recommendation")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	s, err := newSession(printNotifier(cmd), j)
	if err != nil {
		return err
	}

	balance := s.Portfolio().Balance
	recs := recommend.Generate(balance, randSource())
	printRecommendations(out, recs)

	sum := recommend.Summarize(recs)
	fmt.Fprintf(out, "\nSentiment %s, confidence %.1f%%, risk %s\n", sum.Sentiment, sum.Confidence, sum.Risk)

	if !recommendApply {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opened, err := s.ApplyRecommendations(ctx, recs)
	fmt.Fprintf(out, "\nOpened %d of %d trades\n", len(opened), len(recs))
	printPortfolio(out, s.Snapshot())
	return err
}

func printRecommendations(w io.Writer, recs []recommend.Recommendation) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  PAIR\tACTION\tAMOUNT\tCONFIDENCE\tEXPECTED\tTIMEFRAME\tREASON")
	for _, r := range recs {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%.1f%%\t%s (%.2f%%)\t%s\t%s\n",
			r.Pair, r.Action, market.FormatCash(r.Amount), r.Confidence,
			market.FormatSigned(r.ExpectedProfit()), r.ProfitRatio, r.Timeframe, r.Reasoning)
	}
	tw.Flush()
}
