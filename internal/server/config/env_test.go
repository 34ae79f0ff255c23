package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("TODOKEEPER_HTTP_ADDR", ":8081")
	t.Setenv("TODOKEEPER_DATABASE_DSN", "postgres://env")
	t.Setenv("TODOKEEPER_ALGORITHM", "HS384")
	t.Setenv("TODOKEEPER_ACCESS_TOKEN_EXPIRE_MINUTES", "90")
	t.Setenv("TODOKEEPER_BCRYPT_COST", "not-a-number")
	t.Setenv("TODOKEEPER_LOCKOUT_THRESHOLD", "0")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":8081", c.HTTPAddr)
	assert.Equal(t, ":50051", c.GRPCAddr)
	assert.Equal(t, "postgres://env", c.DatabaseDSN)
	assert.Equal(t, "HS384", c.SigningAlgorithm)
	assert.Equal(t, 90*time.Minute, c.AccessTokenTTL)
	assert.Equal(t, 12, c.BcryptCost, "unparsable value keeps the default")
	assert.Equal(t, 0, c.LockoutThreshold)
	assert.Equal(t, 15*time.Minute, c.LockoutWindow)
}

func TestParseEnv_KeepsSubMinuteDurationsWhenUnset(t *testing.T) {
	c := Config{AccessTokenTTL: 90 * time.Second, LockoutWindow: 30 * time.Second}
	parseEnv(&c)

	assert.Equal(t, 90*time.Second, c.AccessTokenTTL)
	assert.Equal(t, 30*time.Second, c.LockoutWindow)
}
