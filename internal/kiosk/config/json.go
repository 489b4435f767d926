package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/drinkkiosk/internal/timex"
	"github.com/shopspring/decimal"
)

// JsonConfig is a DTO used only for JSON unmarshalling. Pointer fields tell
// an absent key apart from a zero value.
type JsonConfig struct {
	DatabaseDSN *string                    `json:"database_dsn"`
	TopUpStep   *decimal.Decimal           `json:"top_up_step"`
	LogLevel    *string                    `json:"log_level"`
	LogFormat   *string                    `json:"log_format"`
	BusyTimeout *timex.Duration            `json:"busy_timeout"`
	Catalog     map[string]decimal.Decimal `json:"catalog"`
}

// parseJson overlays cfg with the keys present in the JSON file at path.
// A catalog in the file replaces the default one as a whole.
func parseJson(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.TopUpStep != nil {
		cfg.TopUpStep = *jc.TopUpStep
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.BusyTimeout != nil {
		cfg.BusyTimeout = jc.BusyTimeout.Duration
	}
	if jc.Catalog != nil {
		cfg.Catalog = jc.Catalog
	}
	return nil
}
