// Package config loads application settings from KARMALOOP_* environment
// variables. An optional .env file is loaded by main before parsing.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every variable name.
const Prefix = "KARMALOOP_"

// Config holds the non-LLM application settings. LLM provider settings live
// in llm.Config and are parsed with the same prefix.
type Config struct {
	// DBPath overrides the default SQLite location. The --db flag wins
	// over this value.
	DBPath string `env:"DB"`

	Log LogConfig `envPrefix:"LOG_"`

	// ScanPacing is the fade delay between questions in the TUI scan.
	ScanPacing time.Duration `env:"SCAN_PACING" envDefault:"300ms"`

	// OracleTimeout bounds a single advisory chat reply, retries included.
	OracleTimeout time.Duration `env:"ORACLE_TIMEOUT" envDefault:"20s"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Mode  string `env:"MODE" envDefault:"dev"`
	Level string `env:"LEVEL" envDefault:"info"`
	File  string `env:"FILE"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(nil)
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return parse(environ)
}

func parse(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: Prefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ScanPacing < 0 {
		return Config{}, fmt.Errorf("%sSCAN_PACING must not be negative, got %s", Prefix, cfg.ScanPacing)
	}
	if cfg.OracleTimeout <= 0 {
		return Config{}, fmt.Errorf("%sORACLE_TIMEOUT must be positive, got %s", Prefix, cfg.OracleTimeout)
	}
	return cfg, nil
}
