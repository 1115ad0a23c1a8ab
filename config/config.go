package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/alphafx/market"
)

// Config represents the complete session configuration
type Config struct {
	Account AccountConfig `json:"account" yaml:"account" mapstructure:"account"`
	Trading TradingConfig `json:"trading" yaml:"trading" mapstructure:"trading"`
	Walk    WalkConfig    `json:"walk" yaml:"walk" mapstructure:"walk"`
	Journal JournalConfig `json:"journal" yaml:"journal" mapstructure:"journal"`
	Profile ProfileConfig `json:"profile" yaml:"profile" mapstructure:"profile"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`

	// Seed makes every generator deterministic. Zero means unseeded.
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty" mapstructure:"seed"`
}

// AccountConfig seeds the portfolio
type AccountConfig struct {
	Currency string  `json:"currency" yaml:"currency" mapstructure:"currency"`
	Balance  float64 `json:"balance" yaml:"balance" mapstructure:"balance"`
}

// TradingConfig holds the trade-size defaults and refresh periods
type TradingConfig struct {
	Pair          string  `json:"pair" yaml:"pair" mapstructure:"pair"`
	DefaultAmount float64 `json:"default_amount" yaml:"default_amount" mapstructure:"default_amount"`
	MinAmount     float64 `json:"min_amount" yaml:"min_amount" mapstructure:"min_amount"`
	PriceTick     string  `json:"price_tick" yaml:"price_tick" mapstructure:"price_tick"`       // e.g. "1s"
	OverviewTick  string  `json:"overview_tick" yaml:"overview_tick" mapstructure:"overview_tick"` // e.g. "2s"
}

// PriceTickDuration parses PriceTick
func (t TradingConfig) PriceTickDuration() (time.Duration, error) {
	return parseTick(t.PriceTick)
}

// OverviewTickDuration parses OverviewTick
func (t TradingConfig) OverviewTickDuration() (time.Duration, error) {
	return parseTick(t.OverviewTick)
}

func parseTick(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// WalkConfig holds the live random-walk parameters
type WalkConfig struct {
	Volatility float64 `json:"volatility" yaml:"volatility" mapstructure:"volatility"`
	Band       float64 `json:"band" yaml:"band" mapstructure:"band"`
}

// Market converts to the market package form.
func (w WalkConfig) Market() market.WalkConfig {
	return market.WalkConfig{Volatility: w.Volatility, Band: w.Band}
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type          string `json:"type" yaml:"type" mapstructure:"type"` // "none", "csv" or "sqlite"
	TradesFile    string `json:"trades_file,omitempty" yaml:"trades_file,omitempty" mapstructure:"trades_file"`
	SnapshotsFile string `json:"snapshots_file,omitempty" yaml:"snapshots_file,omitempty" mapstructure:"snapshots_file"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty" mapstructure:"db_path"`
}

// ProfileConfig locates the demo profile record
type ProfileConfig struct {
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ServerConfig contains the dashboard service parameters
type ServerConfig struct {
	Addr      string  `json:"addr" yaml:"addr" mapstructure:"addr"`
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"` // trade submissions per second
	RateBurst int     `json:"rate_burst" yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig selects the zap logger
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"` // "console" or "json"
}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Missing keys keep their defaults.
	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if c.Trading.Pair == "" {
		return fmt.Errorf("trading.pair is required")
	}
	if _, err := market.Lookup(c.Trading.Pair); err != nil {
		return fmt.Errorf("trading.pair: %w", err)
	}
	if c.Trading.DefaultAmount <= 0 {
		return fmt.Errorf("trading.default_amount must be positive")
	}
	if c.Trading.MinAmount <= 0 {
		return fmt.Errorf("trading.min_amount must be positive")
	}
	if d, err := c.Trading.PriceTickDuration(); err != nil || d <= 0 {
		return fmt.Errorf("trading.price_tick must be a positive duration")
	}
	if d, err := c.Trading.OverviewTickDuration(); err != nil || d <= 0 {
		return fmt.Errorf("trading.overview_tick must be a positive duration")
	}
	if c.Walk.Volatility <= 0 {
		return fmt.Errorf("walk.volatility must be positive")
	}
	if c.Walk.Band <= 0 {
		return fmt.Errorf("walk.band must be positive")
	}
	switch c.Journal.Type {
	case "none", "":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.SnapshotsFile == "" {
			return fmt.Errorf("journal trades_file and snapshots_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("server rate_limit and rate_burst must not be negative")
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// Overridable lists the keys ApplyOverrides copies from viper.
var Overridable = []string{
	"account.currency",
	"account.balance",
	"trading.pair",
	"trading.default_amount",
	"trading.min_amount",
	"journal.type",
	"journal.db_path",
	"profile.path",
	"server.addr",
	"log.level",
	"log.format",
	"seed",
}

// ApplyOverrides copies every key set in v (flag, env or explicit Set) onto
// the config and revalidates it.
func (c *Config) ApplyOverrides(v *viper.Viper) error {
	for _, key := range Overridable {
		if !v.IsSet(key) {
			continue
		}
		switch key {
		case "account.currency":
			c.Account.Currency = strings.ToUpper(v.GetString(key))
		case "account.balance":
			c.Account.Balance = v.GetFloat64(key)
		case "trading.pair":
			c.Trading.Pair = market.NormalizePair(v.GetString(key))
		case "trading.default_amount":
			c.Trading.DefaultAmount = v.GetFloat64(key)
		case "trading.min_amount":
			c.Trading.MinAmount = v.GetFloat64(key)
		case "journal.type":
			c.Journal.Type = v.GetString(key)
		case "journal.db_path":
			c.Journal.DBPath = v.GetString(key)
		case "profile.path":
			c.Profile.Path = v.GetString(key)
		case "server.addr":
			c.Server.Addr = v.GetString(key)
		case "log.level":
			c.Log.Level = v.GetString(key)
		case "log.format":
			c.Log.Format = v.GetString(key)
		case "seed":
			c.Seed = v.GetUint64(key)
		}
	}
	return c.Validate()
}

// NewViper returns a viper instance reading ALPHAFX_* environment variables,
// e.g. ALPHAFX_LOG_LEVEL for log.level.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ALPHAFX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency: "USD",
			Balance:  5000,
		},
		Trading: TradingConfig{
			Pair:          "EUR/USD",
			DefaultAmount: 1000,
			MinAmount:     100,
			PriceTick:     "1s",
			OverviewTick:  "2s",
		},
		Walk: WalkConfig{
			Volatility: market.LiveWalk.Volatility,
			Band:       market.LiveWalk.Band,
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Profile: ProfileConfig{
			Path: "./demo_user.json",
		},
		Server: ServerConfig{
			Addr:      ":8080",
			RateLimit: 5,
			RateBurst: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
