package market

import (
	"errors"
	"fmt"
	"strings"
)

// PairMeta describes a tradable currency pair.
type PairMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string

	// Reference is the price the walk and the overview are anchored to.
	Reference float64

	// Scale multiplies the walk volatility and band. Pairs quoted in JPY or
	// INR move in whole units rather than fractions of a unit.
	Scale float64
}

var Pairs = map[string]PairMeta{
	"EUR/USD": {Name: "EUR/USD", BaseCurrency: "EUR", QuoteCurrency: "USD", Reference: 1.0847, Scale: 1},
	"GBP/USD": {Name: "GBP/USD", BaseCurrency: "GBP", QuoteCurrency: "USD", Reference: 1.2734, Scale: 1},
	"USD/JPY": {Name: "USD/JPY", BaseCurrency: "USD", QuoteCurrency: "JPY", Reference: 148.25, Scale: 100},
	"USD/CHF": {Name: "USD/CHF", BaseCurrency: "USD", QuoteCurrency: "CHF", Reference: 0.8756, Scale: 1},
	"AUD/USD": {Name: "AUD/USD", BaseCurrency: "AUD", QuoteCurrency: "USD", Reference: 0.6543, Scale: 1},
	"USD/CAD": {Name: "USD/CAD", BaseCurrency: "USD", QuoteCurrency: "CAD", Reference: 1.3456, Scale: 1},
	"NZD/USD": {Name: "NZD/USD", BaseCurrency: "NZD", QuoteCurrency: "USD", Reference: 0.6012, Scale: 1},
	"EUR/GBP": {Name: "EUR/GBP", BaseCurrency: "EUR", QuoteCurrency: "GBP", Reference: 0.8518, Scale: 1},
	"EUR/JPY": {Name: "EUR/JPY", BaseCurrency: "EUR", QuoteCurrency: "JPY", Reference: 160.81, Scale: 100},
	"GBP/JPY": {Name: "GBP/JPY", BaseCurrency: "GBP", QuoteCurrency: "JPY", Reference: 188.78, Scale: 100},
	"USD/INR": {Name: "USD/INR", BaseCurrency: "USD", QuoteCurrency: "INR", Reference: 83.12, Scale: 100},
	"EUR/INR": {Name: "EUR/INR", BaseCurrency: "EUR", QuoteCurrency: "INR", Reference: 90.16, Scale: 100},
	"GBP/INR": {Name: "GBP/INR", BaseCurrency: "GBP", QuoteCurrency: "INR", Reference: 105.84, Scale: 100},
}

// PairNames lists the tradable pairs in dashboard order.
var PairNames = []string{
	"EUR/USD", "GBP/USD", "USD/JPY", "USD/CHF", "AUD/USD", "USD/CAD", "NZD/USD",
	"EUR/GBP", "EUR/JPY", "GBP/JPY", "USD/INR", "EUR/INR", "GBP/INR",
}

// OverviewPairs are the pairs shown in the market overview strip.
var OverviewPairs = []string{"EUR/USD", "GBP/USD", "USD/JPY", "USD/CHF", "AUD/USD", "USD/CAD"}

var (
	ErrUnknownPair      = errors.New("unknown currency pair")
	ErrInvalidDirection = errors.New("invalid direction")
)

// Lookup returns the meta for a pair. It accepts "EUR/USD", "EUR_USD" and
// "eurusd" spellings.
func Lookup(pair string) (PairMeta, error) {
	name := NormalizePair(pair)
	meta, ok := Pairs[name]
	if !ok {
		return PairMeta{}, fmt.Errorf("%w: %q", ErrUnknownPair, pair)
	}
	return meta, nil
}

// NormalizePair converts common pair spellings to the "BASE/QUOTE" form.
func NormalizePair(pair string) string {
	p := strings.ToUpper(strings.TrimSpace(pair))
	p = strings.ReplaceAll(p, "_", "/")
	if len(p) == 6 && !strings.Contains(p, "/") {
		p = p[:3] + "/" + p[3:]
	}
	return p
}

// Direction is the side of a trade.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// Sign is +1 for BUY and -1 for SELL.
func (d Direction) Sign() float64 {
	if d == Sell {
		return -1
	}
	return 1
}

func (d Direction) Valid() bool {
	return d == Buy || d == Sell
}

// ParseDirection accepts "buy"/"sell" in any case.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	}
	return "", fmt.Errorf("%w %q: want BUY or SELL", ErrInvalidDirection, s)
}
