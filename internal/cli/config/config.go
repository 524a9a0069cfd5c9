// Package config loads runtime configuration for the LedgerKeeper CLI.
// Sources and precedence: built-in defaults, then an optional JSON file
// (selected via -c or -config), then command-line flags. Unlike the server
// component, the CLI does not read environment variables.
package config

import "time"

// Config holds runtime settings for the LedgerKeeper CLI.
//
// Fields:
//   - ServerAddress: base URL of the backend HTTP API.
//   - RequestTimeout: per-request deadline for API calls.
//
// Units: RequestTimeout is a time.Duration (e.g., 10*time.Second).
type Config struct {
	ServerAddress  string
	RequestTimeout time.Duration
}

// LoadDefaults points the CLI at a local dev server.
func (c *Config) LoadDefaults() {
	c.ServerAddress = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig assembles the effective CLI configuration, later sources
// winning over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
