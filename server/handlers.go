package server

import (
	"context"
	"net/http"

	"github.com/rustyeddy/alphafx/chart"
	"github.com/rustyeddy/alphafx/ledger"
	"github.com/rustyeddy/alphafx/market"
	"github.com/rustyeddy/alphafx/recommend"
	"github.com/rustyeddy/alphafx/session"
)

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/trades", s.handleTrades)
	mux.HandleFunc("POST /api/trades", s.limited(s.handleOpen))
	mux.HandleFunc("POST /api/trades/{id}/close", s.limited(s.handleClose))
	mux.HandleFunc("GET /api/trades/{id}/pl", s.handlePL)
	mux.HandleFunc("GET /api/quotes", s.handleQuotes)
	mux.HandleFunc("GET /api/price", s.handlePrice)
	mux.HandleFunc("GET /api/recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /api/recommendations/apply", s.limited(s.handleApply))
	mux.HandleFunc("GET /api/chart.png", s.handleChart)
	mux.HandleFunc("PUT /api/pair", s.handlePair)
	mux.HandleFunc("PUT /api/settings", s.handleSettings)
	mux.HandleFunc("PUT /api/auto-trading", s.handleAutoTrading)
	mux.HandleFunc("PUT /api/algorithms/{id}", s.handleAlgorithm)
	mux.HandleFunc("GET /ws", s.stream.ServeWS)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Snapshot())
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	trades := s.sess.Trades()
	if r.URL.Query().Get("status") == "open" {
		open := trades[:0]
		for _, t := range trades {
			if t.IsOpen() {
				open = append(open, t)
			}
		}
		trades = open
	}
	writeJSON(w, http.StatusOK, trades)
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req session.OpenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := s.sess.OpenTrade(r.Context(), req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	t, err := s.sess.CloseTrade(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type plResponse struct {
	ID           string  `json:"id"`
	UnrealizedPL float64 `json:"unrealized_pl"`
}

func (s *Server) handlePL(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	pl, err := s.sess.UnrealizedPnL(id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, plResponse{ID: id, UnrealizedPL: pl})
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Quotes())
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	pair := r.URL.Query().Get("pair")
	price, err := s.sess.Price(pair)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if pair == "" {
		pair = s.sess.Pair()
	}
	writeJSON(w, http.StatusOK, map[string]any{"pair": market.NormalizePair(pair), "price": price})
}

type recommendationsResponse struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Summary         recommend.Summary          `json:"summary"`
}

// handleRecommendations draws a fresh set, as opening the modal does, and
// keeps it for a body-less apply.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	balance := s.sess.Portfolio().Balance

	s.recMu.Lock()
	s.recs = recommend.Generate(balance, s.src)
	recs := append([]recommend.Recommendation(nil), s.recs...)
	s.recMu.Unlock()

	writeJSON(w, http.StatusOK, recommendationsResponse{Recommendations: recs, Summary: recommend.Summarize(recs)})
}

type applyResponse struct {
	Opened []ledger.Trade `json:"opened"`
	Error  string         `json:"error,omitempty"`
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var recs []recommend.Recommendation
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &recs) {
			return
		}
	} else {
		s.recMu.Lock()
		recs = append(recs, s.recs...)
		s.recMu.Unlock()
	}
	if len(recs) == 0 {
		writeError(w, http.StatusBadRequest, "no recommendations to apply")
		return
	}

	opened, err := s.sess.ApplyRecommendations(context.WithoutCancel(r.Context()), recs)
	resp := applyResponse{Opened: opened}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		if len(opened) == 0 {
			status = statusFor(err)
		}
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	img, err := chart.RenderPrice(s.sess.Pair(), s.sess.History(market.HistoryLen))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

type pairRequest struct {
	Pair string `json:"pair"`
}

func (s *Server) handlePair(w http.ResponseWriter, r *http.Request) {
	var req pairRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.sess.SelectPair(req.Pair); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pairRequest{Pair: s.sess.Pair()})
}

type settingsRequest struct {
	TradeAmount    *float64 `json:"trade_amount"`
	MinTradeAmount *float64 `json:"min_trade_amount"`
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TradeAmount != nil {
		if err := s.sess.SetTradeAmount(*req.TradeAmount); err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
	}
	if req.MinTradeAmount != nil {
		if err := s.sess.SetMinTradeAmount(*req.MinTradeAmount); err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"trade_amount":     s.sess.TradeAmount(),
		"min_trade_amount": s.sess.MinTradeAmount(),
	})
}

type toggleRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleAutoTrading(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.sess.SetAutoTrading(req.Enabled)
	writeJSON(w, http.StatusOK, toggleRequest{Enabled: s.sess.AutoTrading()})
}

func (s *Server) handleAlgorithm(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.sess.SetAlgorithm(r.PathValue("id"), req.Enabled); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.sess.Algorithms())
}
