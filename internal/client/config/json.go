package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling.
type JSONConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	TokenFile          string         `json:"token_file"`
	Timeout            timex.Duration `json:"timeout"`
}

// parseJSON overlays cfg with the non-empty values of the file at path.
func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.Timeout.Duration > 0 {
		cfg.Timeout = jc.Timeout.Duration
	}
	return nil
}
