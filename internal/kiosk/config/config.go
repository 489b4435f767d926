package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/drinkkiosk/internal/flagx"
	"github.com/dmitrijs2005/drinkkiosk/internal/kiosk/models"
	"github.com/shopspring/decimal"
)

// Config holds runtime settings for the kiosk.
type Config struct {
	DatabaseDSN string
	TopUpStep   decimal.Decimal
	LogLevel    string
	LogFormat   string
	BusyTimeout time.Duration
	Catalog     map[string]decimal.Decimal
}

// LoadDefaults populates c with the stock kiosk settings.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "kiosk.db"
	c.TopUpStep = decimal.RequireFromString("0.50")
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.BusyTimeout = 5 * time.Second
	c.Catalog = models.DefaultPrices()
}

// Validate rejects settings the kiosk cannot run with.
func (c *Config) Validate() error {
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database DSN is empty")
	}
	if !c.TopUpStep.IsPositive() {
		return fmt.Errorf("top-up step must be positive, got %s", c.TopUpStep)
	}
	if !models.IsCents(c.TopUpStep) {
		return fmt.Errorf("top-up step has more than two decimal places: %s", c.TopUpStep)
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("busy timeout must not be negative")
	}
	if _, err := models.NewCatalog(c.Catalog); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	return nil
}

// Load builds a Config from defaults, the optional JSON file and flags in
// args (without the program name), then validates it.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigPath(args); path != "" {
		if err := parseJson(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
