package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrNotFound           = errors.New("profile not found")
	ErrMissingCurrency    = errors.New("Please select a base currency")
	ErrInvalidTradeAmount = errors.New("Please enter a valid basic trade amount")
)

const (
	// FallbackTradeAmount pre-fills the trade size when no profile exists.
	FallbackTradeAmount = 1000.0
	// FallbackMinAmount is the minimum trade size when no profile exists.
	FallbackMinAmount = 100.0
)

// Profile is the demo user record written at signup.
type Profile struct {
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	BaseCurrency     string  `json:"baseCurrency"`
	BasicTradeAmount float64 `json:"basicTradeAmount"`
}

// Validate applies the signup form checks.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.BaseCurrency) == "" {
		return ErrMissingCurrency
	}
	if !(p.BasicTradeAmount > 0) {
		return ErrInvalidTradeAmount
	}
	return nil
}

// SanitizeAmount strips everything but digits, '.' and '-' from a form
// value. Input that still does not parse yields 0.
func SanitizeAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// Store keeps the single profile record in a JSON file.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) Save(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.BaseCurrency = strings.ToUpper(strings.TrimSpace(p.BaseCurrency))

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile dir: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Load reads the record. A missing file returns ErrNotFound; a file that
// does not decode returns a parse error.
func (s *Store) Load() (Profile, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", s.Path, err)
	}
	return p, nil
}

// Defaults are the trade-size fields seeded from the profile.
type Defaults struct {
	TradeAmount float64
	MinAmount   float64
	Currency    string
}

// TradeDefaults seeds the default and minimum trade amount from the stored
// basic trade amount. Without a usable record it falls back to 1000 and 100;
// a malformed record is logged and otherwise treated as absent.
func (s *Store) TradeDefaults(log *zap.Logger) Defaults {
	if log == nil {
		log = zap.NewNop()
	}
	d := Defaults{TradeAmount: FallbackTradeAmount, MinAmount: FallbackMinAmount}

	p, err := s.Load()
	switch {
	case errors.Is(err, ErrNotFound):
		return d
	case err != nil:
		log.Warn("failed to read demo profile", zap.String("path", s.Path), zap.Error(err))
		return d
	}

	if p.BasicTradeAmount > 0 {
		d.TradeAmount = p.BasicTradeAmount
		d.MinAmount = p.BasicTradeAmount
	}
	d.Currency = p.BaseCurrency
	return d
}
