package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with TICKETDESK_* environment variables. A .env
// file in the working directory is loaded first when present; real
// environment variables win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("TICKETDESK_SERVER_URL"); v != "" {
		cfg.ServerEndpointURL = v
	}
	if v := os.Getenv("TICKETDESK_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("TICKETDESK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TICKETDESK_SNAPSHOT_DSN"); v != "" {
		cfg.SnapshotDSN = v
	}
}
