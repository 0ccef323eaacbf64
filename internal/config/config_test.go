package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"STORAGE_BACKEND", "SESSION_BACKEND", "DB_PORT", "DB_MAX_CONNS", "SESSION_PRUNE_INTERVAL", "EVENTS_ENABLED"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, BackendMemory, cfg.Storage)
	assert.Equal(t, BackendMemory, cfg.Sessions)
	assert.Equal(t, 24*time.Hour, cfg.SessionPruneInterval)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 30*time.Second, cfg.DB.IdleTimeout)
	assert.Equal(t, 2*time.Second, cfg.DB.ConnectTimeout)
	assert.False(t, cfg.EventsEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_IDLE_TIMEOUT", "1m")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,,")
	t.Setenv("EVENTS_ENABLED", "true")
	cfg := Load()

	assert.Equal(t, BackendPostgres, cfg.Storage)
	assert.Equal(t, BackendRedis, cfg.Sessions)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, time.Minute, cfg.DB.IdleTimeout)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.EventsEnabled)
}

func TestBadValuesFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "abc")
	t.Setenv("SESSION_TTL", "-5m")
	cfg := Load()
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}
