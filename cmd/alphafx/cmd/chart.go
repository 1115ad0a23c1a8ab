package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/alphafx/chart"
	"github.com/rustyeddy/alphafx/market"
	"github.com/rustyeddy/alphafx/notify"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the synthetic price history as a PNG",
	Long: `Generate the 50-minute chart history for the selected pair, with its
moving average, and write it as a PNG.

Example:
  alphafx chart --pair GBP/USD -o gbpusd.png`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

var chartOutput string

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "price.png", "output PNG path")
}

func runChart(cmd *cobra.Command, args []string) error {
	s, err := newSession(notify.Discard, nil)
	if err != nil {
		return err
	}

	samples := s.History(market.HistoryLen)
	img, err := chart.RenderPrice(s.Pair(), samples)
	if err != nil {
		return err
	}
	if err := os.WriteFile(chartOutput, img, 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}

	last := samples[len(samples)-1]
	zlog.Debug("chart written", zap.String("path", chartOutput), zap.Int("bytes", len(img)))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s chart written to %s (last %s, SMA %s)\n",
		s.Pair(), chartOutput, market.FormatRate(last.Price), market.FormatRate(last.SMA))
	return nil
}
