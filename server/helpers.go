package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rustyeddy/alphafx/ledger"
	"github.com/rustyeddy/alphafx/market"
	"github.com/rustyeddy/alphafx/session"
)

// ErrorResponse is the error body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// decodeJSON reads a request body of at most 1MB into v, answering 400 on
// failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// statusFor maps session and ledger errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrTradeNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrTradeClosed):
		return http.StatusConflict
	case errors.Is(err, session.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrBelowMinimum),
		errors.Is(err, session.ErrInvalidAmount),
		errors.Is(err, session.ErrUnknownAlgorithm),
		errors.Is(err, market.ErrUnknownPair),
		errors.Is(err, market.ErrInvalidDirection):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
