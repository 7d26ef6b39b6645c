package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Addr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cache:6380", Config{Host: "cache", Port: "6380"}.Addr())
	assert.Equal(t, "localhost:6379", Config{Host: "localhost"}.Addr())
}

func TestNewRedisClient_Disabled(t *testing.T) {
	t.Parallel()

	rdb, err := NewRedisClient(context.Background(), Config{})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PASSWORD", "pw")

	cfg := LoadConfigFromEnv(Config{Port: "6379"})
	assert.Equal(t, Config{Host: "redis", Port: "6379", Password: "pw"}, cfg)
}
