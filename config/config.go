// Package config loads application configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime knobs of the server.
type Config struct {
	// Addr is the HTTP listen address for the local UI shell.
	Addr string `envconfig:"LEDGER_ADDR" default:":8080"`

	// DBPath is the SQLite database path. ":memory:" is accepted.
	DBPath string `envconfig:"LEDGER_DB_PATH" default:"household.db"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `envconfig:"LEDGER_LOG_LEVEL" default:"info"`
}

// Load reads configuration from LEDGER_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}
