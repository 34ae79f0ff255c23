package config

import (
	"os"
	"time"
)

func parseEnv(cfg *Config) {
	if v := os.Getenv("TODOKEEPER_SERVER"); v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v := os.Getenv("TODOKEEPER_TOKEN_FILE"); v != "" {
		cfg.TokenFile = v
	}
	if v := os.Getenv("TODOKEEPER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
}
