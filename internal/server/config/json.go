package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ledgerkeeper/ledgerkeeper/internal/flagx"
	"github.com/ledgerkeeper/ledgerkeeper/internal/timex"
)

// jsonConfig mirrors Config for file-based configuration. All fields are
// optional; absent fields leave the current value untouched.
type jsonConfig struct {
	Address                     string         `json:"address"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	AdminEmail                  string         `json:"admin_email"`
	AdminPassword               string         `json:"admin_password"`
	LogLevel                    string         `json:"log_level"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flag or the CONFIG environment variable, if any.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath()

	if path == "" {
		path = os.Getenv("CONFIG")
	}

	if path == "" {
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("error reading config file: %v", err))
	}

	overlay := &jsonConfig{}
	if err := json.Unmarshal(raw, overlay); err != nil {
		panic(fmt.Sprintf("error parsing config file: %v", err))
	}

	if overlay.Address != "" {
		cfg.Address = overlay.Address
	}
	if overlay.DatabaseDSN != "" {
		cfg.DatabaseDSN = overlay.DatabaseDSN
	}
	if overlay.SecretKey != "" {
		cfg.SecretKey = overlay.SecretKey
	}
	if overlay.AccessTokenValidityDuration.Duration != 0 {
		cfg.AccessTokenValidityDuration = overlay.AccessTokenValidityDuration.Duration
	}
	if overlay.AdminEmail != "" {
		cfg.AdminEmail = overlay.AdminEmail
	}
	if overlay.AdminPassword != "" {
		cfg.AdminPassword = overlay.AdminPassword
	}
	if overlay.LogLevel != "" {
		cfg.LogLevel = overlay.LogLevel
	}
	if overlay.S3RootUser != "" {
		cfg.S3RootUser = overlay.S3RootUser
	}
	if overlay.S3RootPassword != "" {
		cfg.S3RootPassword = overlay.S3RootPassword
	}
	if overlay.S3Bucket != "" {
		cfg.S3Bucket = overlay.S3Bucket
	}
	if overlay.S3Region != "" {
		cfg.S3Region = overlay.S3Region
	}
	if overlay.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = overlay.S3BaseEndpoint
	}
}
