package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "USD", cfg.Account.Currency)
	assert.Equal(t, 5000.0, cfg.Account.Balance)
	assert.Equal(t, "EUR/USD", cfg.Trading.Pair)
	assert.Equal(t, 100.0, cfg.Trading.MinAmount)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(*Config) {}, ""},
		{"missing currency", func(c *Config) { c.Account.Currency = "" }, "account.currency is required"},
		{"negative balance", func(c *Config) { c.Account.Balance = -1000 }, "account.balance must be positive"},
		{"unknown pair", func(c *Config) { c.Trading.Pair = "XXX/YYY" }, "unknown currency pair"},
		{"zero default amount", func(c *Config) { c.Trading.DefaultAmount = 0 }, "trading.default_amount must be positive"},
		{"zero min amount", func(c *Config) { c.Trading.MinAmount = 0 }, "trading.min_amount must be positive"},
		{"bad price tick", func(c *Config) { c.Trading.PriceTick = "soon" }, "trading.price_tick"},
		{"zero overview tick", func(c *Config) { c.Trading.OverviewTick = "0s" }, "trading.overview_tick"},
		{"zero volatility", func(c *Config) { c.Walk.Volatility = 0 }, "walk.volatility must be positive"},
		{"zero band", func(c *Config) { c.Walk.Band = 0 }, "walk.band must be positive"},
		{"csv without files", func(c *Config) { c.Journal.Type = "csv" }, "trades_file and snapshots_file"},
		{"sqlite without path", func(c *Config) { c.Journal.Type = "sqlite" }, "db_path required"},
		{"unknown journal", func(c *Config) { c.Journal.Type = "mongo" }, "journal.type"},
		{"negative rate", func(c *Config) { c.Server.RateLimit = -1 }, "rate_limit"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Account.Balance = 12345
			cfg.Trading.Pair = "GBP/USD"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Account, loaded.Account)
			assert.Equal(t, cfg.Trading, loaded.Trading)
			assert.Equal(t, cfg.Walk, loaded.Walk)
		})
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account:\n  currency: EUR\n  balance: 750\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Account.Currency)
	assert.Equal(t, 750.0, cfg.Account.Balance)
	assert.Equal(t, "EUR/USD", cfg.Trading.Pair)
	assert.Equal(t, "1s", cfg.Trading.PriceTick)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account:\n  balance: -5\n"), 0644))
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestTickDurations(t *testing.T) {
	tests := []struct {
		tick     string
		expected string
		wantErr  bool
	}{
		{"1s", "1s", false},
		{"500ms", "500ms", false},
		{"", "0s", false},
		{"invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.tick, func(t *testing.T) {
			tc := TradingConfig{PriceTick: tt.tick, OverviewTick: tt.tick}
			d, err := tc.PriceTickDuration()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, d.String())

			d, err = tc.OverviewTickDuration()
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, d.String())
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	v := NewViper()
	v.Set("account.currency", "gbp")
	v.Set("trading.pair", "usd_jpy")
	v.Set("trading.min_amount", 250)
	v.Set("log.level", "debug")
	v.Set("seed", 42)

	cfg := Default()
	require.NoError(t, cfg.ApplyOverrides(v))
	assert.Equal(t, "GBP", cfg.Account.Currency)
	assert.Equal(t, "USD/JPY", cfg.Trading.Pair)
	assert.Equal(t, 250.0, cfg.Trading.MinAmount)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 5000.0, cfg.Account.Balance)
}

func TestApplyOverridesFromEnv(t *testing.T) {
	t.Setenv("ALPHAFX_ACCOUNT_BALANCE", "9000")
	t.Setenv("ALPHAFX_JOURNAL_TYPE", "sqlite")
	t.Setenv("ALPHAFX_JOURNAL_DB_PATH", "/tmp/j.sqlite")

	cfg := Default()
	require.NoError(t, cfg.ApplyOverrides(NewViper()))
	assert.Equal(t, 9000.0, cfg.Account.Balance)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "/tmp/j.sqlite", cfg.Journal.DBPath)
}

func TestApplyOverridesValidates(t *testing.T) {
	v := NewViper()
	v.Set("account.balance", -1)

	err := Default().ApplyOverrides(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account.balance")
}
