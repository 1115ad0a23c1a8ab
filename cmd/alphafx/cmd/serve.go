package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/alphafx/journal"
	"github.com/rustyeddy/alphafx/notify"
	"github.com/rustyeddy/alphafx/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a live session over HTTP and websocket",
	Long: `Run a trading session with live price and market-overview ticks and
expose it as a JSON API plus a /ws event stream.

Example:
  alphafx serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default server.addr)")
	_ = v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	hub := notify.NewHub(32)
	sess, err := newSession(notify.Multi{hub, notify.Log{L: zlog}}, j)
	if err != nil {
		return err
	}
	srv := server.New(sess, hub, server.Options{
		Addr:      cfg.Server.Addr,
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
		Logger:    zlog,
		Rand:      randSource(),
	})
	sess.SetObserver(srv)

	errc := make(chan error, 2)
	go func() { errc <- sess.Run(ctx) }()
	go func() { errc <- srv.Run(ctx) }()

	var firstErr error
	for i := 0; i < 2; i++ {
		err := <-errc
		if err != nil && !errors.Is(err, context.Canceled) && firstErr == nil {
			firstErr = err
			zlog.Error("serve stopped", zap.Error(err))
			stop()
		}
	}
	return firstErr
}
