package store

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Watchlist string `yaml:"watchlist"`

	Risk struct {
		Capital      float64 `yaml:"capital"`
		RiskPct      float64 `yaml:"risk_pct"`
		LotSize      int     `yaml:"lot_size"`
		TickSize     float64 `yaml:"tick_size"`
		MaxPositions int     `yaml:"max_positions"`
	} `yaml:"risk"`

	Screen struct {
		MinADV    float64  `yaml:"min_adv"`
		MinATRPct *float64 `yaml:"min_atr_pct"`
		MaxATRPct *float64 `yaml:"max_atr_pct"`
		GapMin    *float64 `yaml:"gap_min"`
		GapMax    *float64 `yaml:"gap_max"`
		ATRWindow int      `yaml:"atr_window"`
		MaxPerDay int      `yaml:"max_per_day"`
	} `yaml:"screen"`

	Signal struct {
		ORMinutes        int     `yaml:"or_minutes"`
		UseVWAP          bool    `yaml:"use_vwap"`
		EntryNotBefore   int     `yaml:"entry_not_before"`
		SpreadLimit      float64 `yaml:"spread_limit"`
		RequireBook      bool    `yaml:"require_book"`
		MinBidQty        int64   `yaml:"min_bid_qty"`
		MinAskQty        int64   `yaml:"min_ask_qty"`
		TPRR             float64 `yaml:"tp_rr"`
		TrailOnVWAP      bool    `yaml:"trail_on_vwap"`
		MinStopTicks     int     `yaml:"min_stop_ticks"`
		RequireQuoteData bool    `yaml:"require_quote_data"`
	} `yaml:"signal"`

	Backtest struct {
		Workers  int    `yaml:"workers"`
		Lookback int    `yaml:"lookback"`
		OutDir   string `yaml:"out_dir"`
	} `yaml:"backtest"`
}

// defaultConfig carries the defaults that yaml unmarshalling overrides when
// the key is present. Booleans that default to true live here because a zero
// value cannot tell "absent" from "false".
func defaultConfig() Config {
	var c Config
	c.Watchlist = "config/watchlist_seed.csv"
	c.Risk.TickSize = 1.0
	c.Screen.MinADV = 1e8
	c.Screen.ATRWindow = 20
	c.Signal.ORMinutes = 5
	c.Signal.UseVWAP = true
	c.Signal.EntryNotBefore = 3
	c.Signal.SpreadLimit = 0.0005
	c.Signal.TPRR = 1.0
	c.Signal.TrailOnVWAP = true
	c.Backtest.Workers = 1
	c.Backtest.Lookback = 200
	c.Backtest.OutDir = "logs"
	return c
}

func (c *Config) Validate() error {
	if c.Risk.Capital <= 0 {
		return fmt.Errorf("risk.capital must be > 0, got %.2f", c.Risk.Capital)
	}
	if c.Risk.RiskPct <= 0 || c.Risk.RiskPct > 1 {
		return fmt.Errorf("risk.risk_pct must be a fraction in (0,1], got %.4f", c.Risk.RiskPct)
	}
	if c.Risk.LotSize < 1 {
		return fmt.Errorf("risk.lot_size must be >= 1, got %d", c.Risk.LotSize)
	}
	if c.Risk.TickSize <= 0 {
		return fmt.Errorf("risk.tick_size must be > 0, got %.4f", c.Risk.TickSize)
	}
	if c.Screen.ATRWindow < 1 {
		return fmt.Errorf("screen.atr_window must be >= 1, got %d", c.Screen.ATRWindow)
	}
	if c.Signal.ORMinutes < 1 {
		return fmt.Errorf("signal.or_minutes must be >= 1, got %d", c.Signal.ORMinutes)
	}
	if c.Signal.EntryNotBefore < 0 {
		return fmt.Errorf("signal.entry_not_before must be >= 0, got %d", c.Signal.EntryNotBefore)
	}
	if c.Signal.SpreadLimit < 0 {
		return fmt.Errorf("signal.spread_limit must be >= 0, got %.6f", c.Signal.SpreadLimit)
	}
	if c.Signal.TPRR <= 0 {
		return fmt.Errorf("signal.tp_rr must be > 0, got %.2f", c.Signal.TPRR)
	}
	if c.Backtest.Workers < 1 {
		return fmt.Errorf("backtest.workers must be >= 1, got %d", c.Backtest.Workers)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := ReadFileBOM(path)
	if err != nil {
		return nil, err
	}
	c := defaultConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	// max_per_day falls back to the per-day position cap.
	if c.Screen.MaxPerDay == 0 {
		c.Screen.MaxPerDay = c.Risk.MaxPositions
	}
	if c.Screen.MaxPerDay == 0 {
		c.Screen.MaxPerDay = 3
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

// ReadFileBOM reads a file and strips a UTF-8 byte order mark if present.
// Config and seed files round-trip through spreadsheet tools that add one.
func ReadFileBOM(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF}), nil
}
