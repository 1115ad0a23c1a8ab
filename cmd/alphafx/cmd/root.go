package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rustyeddy/alphafx/config"
	"github.com/rustyeddy/alphafx/internal/logger"
	"github.com/rustyeddy/alphafx/journal"
	"github.com/rustyeddy/alphafx/market"
	"github.com/rustyeddy/alphafx/notify"
	"github.com/rustyeddy/alphafx/profile"
	"github.com/rustyeddy/alphafx/session"
)

var rootCmd = &cobra.Command{
	Use:   "alphafx",
	Short: "A forex trading session simulator",
	Long: `AlphaFX simulates a forex trading dashboard session.

It provides tools for:
  - Opening and closing trades against a synthetic price walk
  - Portfolio accounting with realized and unrealized P/L
  - Mock AI trade recommendations
  - Price charts and a closed-trade journal
  - Serving the session over HTTP and a websocket stream`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	cfgFile string
	v       = config.NewViper()

	cfg  *config.Config
	zlog = zap.NewNop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer zlog.Sync()
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (yaml or json)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console or json)")
	pf.Uint64("seed", 0, "random seed for reproducible prices (0 = unseeded)")
	pf.String("pair", "", "currency pair to trade, e.g. EUR/USD")

	_ = v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = v.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = v.BindPFlag("seed", pf.Lookup("seed"))
	_ = v.BindPFlag("trading.pair", pf.Lookup("pair"))
}

// loadConfig builds the effective config: file (or defaults), then env and
// flag overrides through viper. Flags left at their defaults do not count as
// set, so they never mask the file.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}
	} else {
		cfg = config.Default()
	}

	if err := cfg.ApplyOverrides(v); err != nil {
		return err
	}

	l, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	zlog = l
	return nil
}

func randSource() market.RandSource {
	if cfg.Seed != 0 {
		return market.NewRand(cfg.Seed)
	}
	return market.NewUnseeded()
}

// newSession builds a session from the config, seeding trade sizes from the
// demo profile when one exists.
func newSession(n notify.Notifier, j journal.Journal) (*session.Session, error) {
	st, err := session.SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	d := profile.NewStore(cfg.Profile.Path).TradeDefaults(zlog)
	if d.Currency != "" {
		st.TradeAmount = d.TradeAmount
		st.MinAmount = d.MinAmount
		st.Currency = d.Currency
	}

	s, err := session.New(st, session.Options{
		Logger:   zlog,
		Notifier: n,
		Journal:  j,
		Rand:     randSource(),
	})
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return s, nil
}

// printNotifier writes notifications to the command's output the way the
// dashboard shows toasts.
func printNotifier(cmd *cobra.Command) notify.Notifier {
	return notify.Func(func(n notify.Notification) {
		fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s: %s\n", n.Kind, n.Title, n.Message)
	})
}
