package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config with KPARK_* environment tags. Values left unset
// keep whatever the earlier sources produced.
type envConfig struct {
	ServerBaseURL       string        `env:"KPARK_SERVER_URL"`
	DatabasePath        string        `env:"KPARK_DATABASE_PATH"`
	RequestTimeout      time.Duration `env:"KPARK_REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"KPARK_ONLINE_CHECK_INTERVAL"`
}

// parseEnv overlays Config with values from the environment. A malformed
// value (e.g. an unparsable duration) panics, same as the JSON layer.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.ServerBaseURL != "" {
		cfg.ServerBaseURL = ec.ServerBaseURL
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.OnlineCheckInterval != 0 {
		cfg.OnlineCheckInterval = ec.OnlineCheckInterval
	}
}
