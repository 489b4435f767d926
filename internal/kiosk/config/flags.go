package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/drinkkiosk/internal/flagx"
	"github.com/shopspring/decimal"
)

// parseFlags populates cfg from the command-line flags it knows about. The
// args are filtered first with flagx.FilterArgs, so -c/-config and any
// other flags are left alone.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-t", "-l", "-f", "-b"})

	fs := flag.NewFlagSet("kiosk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN (SQLite path or postgres:// URL)")
	fs.Func("t", "top-up increment", func(s string) error {
		step, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		cfg.TopUpStep = step
		return nil
	})
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text|json)")
	busyTimeout := fs.Int("b", int(cfg.BusyTimeout.Milliseconds()), "SQLite busy timeout (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.BusyTimeout = time.Duration(*busyTimeout) * time.Millisecond
	return nil
}
