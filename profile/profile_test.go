package profile

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Profile
		err  error
	}{
		{"ok", Profile{BaseCurrency: "USD", BasicTradeAmount: 500}, nil},
		{"missing currency", Profile{BasicTradeAmount: 500}, ErrMissingCurrency},
		{"blank currency", Profile{BaseCurrency: "  ", BasicTradeAmount: 500}, ErrMissingCurrency},
		{"zero amount", Profile{BaseCurrency: "USD"}, ErrInvalidTradeAmount},
		{"negative amount", Profile{BaseCurrency: "USD", BasicTradeAmount: -5}, ErrInvalidTradeAmount},
		{"nan amount", Profile{BaseCurrency: "USD", BasicTradeAmount: math.NaN()}, ErrInvalidTradeAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.Equal(t, "Please select a base currency", ErrMissingCurrency.Error())
}

func TestSanitizeAmount(t *testing.T) {
	assert.Equal(t, 1500.0, SanitizeAmount("1,500"))
	assert.Equal(t, 250.5, SanitizeAmount("$250.50 USD"))
	assert.Equal(t, -3.0, SanitizeAmount("-3"))
	assert.Equal(t, 0.0, SanitizeAmount("abc"))
	assert.Equal(t, 0.0, SanitizeAmount("1.2.3"))
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested", "demo_user.json"))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	in := Profile{Name: "Sam", Email: "sam@example.com", BaseCurrency: " eur", BasicTradeAmount: 2500}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "EUR", out.BaseCurrency)
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Email, out.Email)
	assert.Equal(t, 2500.0, out.BasicTradeAmount)

	raw, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"basicTradeAmount": 2500`)
}

func TestSaveRejectsInvalid(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "demo_user.json"))
	assert.ErrorIs(t, s.Save(Profile{BasicTradeAmount: 10}), ErrMissingCurrency)

	_, err := os.Stat(s.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestTradeDefaults(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		d := NewStore(filepath.Join(dir, "missing.json")).TradeDefaults(nil)
		assert.Equal(t, Defaults{TradeAmount: 1000, MinAmount: 100}, d)
	})

	t.Run("stored", func(t *testing.T) {
		s := NewStore(filepath.Join(dir, "ok.json"))
		require.NoError(t, s.Save(Profile{BaseCurrency: "GBP", BasicTradeAmount: 750}))
		d := s.TradeDefaults(nil)
		assert.Equal(t, Defaults{TradeAmount: 750, MinAmount: 750, Currency: "GBP"}, d)
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		core, logs := observer.New(zapcore.WarnLevel)
		d := NewStore(path).TradeDefaults(zap.New(core))
		assert.Equal(t, Defaults{TradeAmount: 1000, MinAmount: 100}, d)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("non-positive amount", func(t *testing.T) {
		path := filepath.Join(dir, "zero.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"baseCurrency":"USD","basicTradeAmount":0}`), 0o600))
		d := NewStore(path).TradeDefaults(nil)
		assert.Equal(t, 1000.0, d.TradeAmount)
		assert.Equal(t, 100.0, d.MinAmount)
		assert.Equal(t, "USD", d.Currency)
	})
}
