package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
	"github.com/dmitrijs2005/todokeeper/internal/timex"
)

// FileConfig is the on-disk shape of the server configuration. Durations use
// timex.Duration so files may say "60m" or give nanoseconds.
//
// Zero values mean "not set" and leave the current setting alone.
type FileConfig struct {
	HTTPAddr         string         `json:"http_addr" yaml:"http_addr"`
	GRPCAddr         string         `json:"grpc_addr" yaml:"grpc_addr"`
	DatabaseDSN      string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey        string         `json:"secret_key" yaml:"secret_key"`
	SigningAlgorithm string         `json:"algorithm" yaml:"algorithm"`
	AccessTokenTTL   timex.Duration `json:"access_token_ttl" yaml:"access_token_ttl"`
	BcryptCost       int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	RedisURL         string         `json:"redis_url" yaml:"redis_url"`
	LockoutThreshold *int           `json:"lockout_threshold" yaml:"lockout_threshold"`
	LockoutWindow    timex.Duration `json:"lockout_window" yaml:"lockout_window"`
	LogLevel         string         `json:"log_level" yaml:"log_level"`
}

// parseFile loads the file named by -c/-config, if any, and overlays its
// values onto config. ".yaml" and ".yml" files are read as YAML, anything
// else as JSON.
func parseFile(config *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func (fc *FileConfig) apply(config *Config) {
	if fc.HTTPAddr != "" {
		config.HTTPAddr = fc.HTTPAddr
	}
	if fc.GRPCAddr != "" {
		config.GRPCAddr = fc.GRPCAddr
	}
	if fc.DatabaseDSN != "" {
		config.DatabaseDSN = fc.DatabaseDSN
	}
	if fc.SecretKey != "" {
		config.SecretKey = fc.SecretKey
	}
	if fc.SigningAlgorithm != "" {
		config.SigningAlgorithm = fc.SigningAlgorithm
	}
	if fc.AccessTokenTTL.Duration != 0 {
		config.AccessTokenTTL = fc.AccessTokenTTL.Duration
	}
	if fc.BcryptCost != 0 {
		config.BcryptCost = fc.BcryptCost
	}
	if fc.RedisURL != "" {
		config.RedisURL = fc.RedisURL
	}
	// pointer so that an explicit 0 can disable lockout
	if fc.LockoutThreshold != nil {
		config.LockoutThreshold = *fc.LockoutThreshold
	}
	if fc.LockoutWindow.Duration != 0 {
		config.LockoutWindow = fc.LockoutWindow.Duration
	}
	if fc.LogLevel != "" {
		config.LogLevel = fc.LogLevel
	}
}
