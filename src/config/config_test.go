package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("APP_BASE_URL", "https://forms.example.com/")
	t.Setenv("SWEEP_INTERVAL", "")
	t.Setenv("REDIS_URI", "")

	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "https://forms.example.com", cfg.AppBaseURL)
	assert.Equal(t, "BizoniiDB", cfg.MongoDB)
	assert.Equal(t, 24*time.Hour, cfg.SweepInterval)
	assert.Equal(t, "@daily", cfg.SweepCron)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.SeedDemo)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SWEEP_INTERVAL", "soon")
	t.Setenv("JWT_TTL", "-1h")
	t.Setenv("LOG_PRETTY", "maybe")
	t.Setenv("REDIS_URI", "localhost:6379")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.SweepInterval)
	assert.Equal(t, 10*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.LogPretty)
	assert.True(t, cfg.RedisEnabled())
}
