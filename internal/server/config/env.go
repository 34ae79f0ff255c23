package config

import (
	"os"
	"strconv"
	"time"
)

const envPrefix = "TODOKEEPER_"

// parseEnv overlays TODOKEEPER_* environment variables. Empty or
// unparsable values keep the current setting.
func parseEnv(cfg *Config) {
	cfg.HTTPAddr = envOrDefault("HTTP_ADDR", cfg.HTTPAddr)
	cfg.GRPCAddr = envOrDefault("GRPC_ADDR", cfg.GRPCAddr)
	cfg.DatabaseDSN = envOrDefault("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.SecretKey = envOrDefault("SECRET_KEY", cfg.SecretKey)
	cfg.SigningAlgorithm = envOrDefault("ALGORITHM", cfg.SigningAlgorithm)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)

	cfg.BcryptCost = envInt("BCRYPT_COST", cfg.BcryptCost)
	cfg.LockoutThreshold = envInt("LOCKOUT_THRESHOLD", cfg.LockoutThreshold)

	cfg.AccessTokenTTL = envMinutes("ACCESS_TOKEN_EXPIRE_MINUTES", cfg.AccessTokenTTL)
	cfg.LockoutWindow = envMinutes("LOCKOUT_WINDOW_MINUTES", cfg.LockoutWindow)
}

// envMinutes reads a whole number of minutes. The fallback is returned
// untouched, so sub-minute values from a config file survive.
func envMinutes(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(envPrefix + name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return time.Duration(v) * time.Minute
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(envPrefix + name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(envPrefix + name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
