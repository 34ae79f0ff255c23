package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the todokeeper CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - TokenFile: where the access token is kept between invocations.
//   - Timeout: deadline applied to each call to the server.
type Config struct {
	ServerEndpointAddr string
	TokenFile          string
	Timeout            time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.TokenFile = defaultTokenFile()
	c.Timeout = 5 * time.Second
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".todokeeper-token"
	}
	return filepath.Join(dir, "todokeeper", "token")
}

// Load constructs a Config from defaults, the optional JSON file at path
// and the environment, in that order.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if path != "" {
		if err := parseJSON(cfg, path); err != nil {
			return nil, err
		}
	}
	parseEnv(cfg)
	return cfg, nil
}
