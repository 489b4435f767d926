// Package config loads runtime configuration for the kiosk.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   database DSN: a SQLite file path, or postgres://...
//	-t string   top-up increment, e.g. 0.50
//	-l string   log level: debug, info, warn, error
//	-f string   log format: text or json
//	-b int      SQLite busy timeout (milliseconds)
//
// # JSON schema
//
//	{
//	  "database_dsn": "kiosk.db",
//	  "top_up_step": "0.50",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "busy_timeout": "5s",
//	  "catalog": {"Cola": "1.50", "Water": "1.00", "Juice": "2.00"}
//	}
//
// Keys that are absent keep their previous value.
package config
