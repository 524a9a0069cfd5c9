package config

import (
	"encoding/json"
	"os"

	"github.com/ledgerkeeper/ledgerkeeper/internal/flagx"
	"github.com/ledgerkeeper/ledgerkeeper/internal/timex"
)

// jsonConfig is the file-side shape of Config. RequestTimeout goes through
// timex.Duration so the file may carry either a string like "10s" or integer
// nanoseconds.
type jsonConfig struct {
	ServerAddress  string         `json:"server_address"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flag. Absent fields keep their current values; read or
// unmarshal errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var overlay jsonConfig
	if err := json.Unmarshal(raw, &overlay); err != nil {
		panic(err)
	}

	if overlay.ServerAddress != "" {
		cfg.ServerAddress = overlay.ServerAddress
	}
	if overlay.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = overlay.RequestTimeout.Duration
	}
}
