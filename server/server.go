package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rustyeddy/alphafx/market"
	"github.com/rustyeddy/alphafx/notify"
	"github.com/rustyeddy/alphafx/recommend"
	"github.com/rustyeddy/alphafx/session"
)

// Options configure a Server. RateLimit is trade requests per second; zero
// means unlimited.
type Options struct {
	Addr      string
	RateLimit float64
	RateBurst int
	Logger    *zap.Logger
	Rand      market.RandSource
}

// Server exposes one trading session over HTTP and a websocket stream.
type Server struct {
	sess    *session.Session
	hub     *notify.Hub
	stream  *Stream
	limiter *rate.Limiter
	log     *zap.Logger
	http    *http.Server

	recMu sync.Mutex
	src   market.RandSource
	recs  []recommend.Recommendation
}

// New wires the routes. The hub is the session's notifier; its messages are
// forwarded to websocket clients while Run is active.
func New(sess *session.Session, hub *notify.Hub, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rand == nil {
		opts.Rand = market.NewUnseeded()
	}
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 1
	}

	s := &Server{
		sess:    sess,
		hub:     hub,
		stream:  NewStream(opts.Logger),
		limiter: rate.NewLimiter(limit, opts.RateBurst),
		log:     opts.Logger,
		src:     opts.Rand,
	}

	mux := http.NewServeMux()
	s.routes(mux)
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           recoverPanics(s.log, logRequests(s.log, mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler { return s.http.Handler }

func (s *Server) Stream() *Stream { return s.stream }

// PriceTicked and QuotesUpdated make the server a session.Observer.
func (s *Server) PriceTicked(pt session.PriceTick) { s.stream.Broadcast("price", pt) }

func (s *Server) QuotesUpdated(qs []market.Quote) { s.stream.Broadcast("quotes", qs) }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go s.forwardNotifications(ctx)

	errc := make(chan error, 1)
	go func() {
		s.log.Info("dashboard server listening", zap.String("addr", s.http.Addr))
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.stream.Close()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("dashboard server stopped")
	return nil
}

func (s *Server) forwardNotifications(ctx context.Context) {
	if s.hub == nil {
		return
	}
	ch, cancel := s.hub.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			s.stream.Broadcast("notification", n)
		}
	}
}
