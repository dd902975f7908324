package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/ticketdesk/internal/flagx"
	"github.com/dmitrijs2005/ticketdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointURL string         `json:"server_endpoint_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	LogLevel          string         `json:"log_level"`
	SnapshotDSN       string         `json:"snapshot_dsn"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flags. Absent flag means no JSON is loaded. Panics on read or
// unmarshal errors; only populated fields override the config.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointURL != "" {
		cfg.ServerEndpointURL = jc.ServerEndpointURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.SnapshotDSN != "" {
		cfg.SnapshotDSN = jc.SnapshotDSN
	}
}
