// Package config assembles the client's runtime settings from defaults,
// the environment, an optional JSON file and command-line flags, in that
// order; later sources take precedence.
package config

import "time"

// Config holds runtime settings for the TicketDesk CLI.
//
// Fields:
//   - ServerEndpointURL: base URL of the backend REST API, including the
//     version prefix (e.g. http://127.0.0.1:8080/v1).
//   - RequestTimeout: per-request HTTP timeout.
//   - LogLevel: zap level string (debug, info, warn, error).
//   - SnapshotDSN: sqlite DSN for the offline ticket snapshot.
type Config struct {
	ServerEndpointURL string
	RequestTimeout    time.Duration
	LogLevel          string
	SnapshotDSN       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080/v1"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.SnapshotDSN = "ticketdesk.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
