package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_NAME", "ENVIRONMENT", "REDIS_DB", "LOG_TO_DB", "TICKET_STATS_SCHEDULE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "go-support", cfg.DBName)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "@hourly", cfg.TicketStatsSchedule)
	assert.False(t, cfg.LogToDB)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "support-test")
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("LOG_TO_DB", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("OPEN_TICKETS_CACHE_TTL_SECONDS", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "support-test", cfg.DBName)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.LogToDB)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 30*time.Second, cfg.OpenTicketsCacheTTL())
}

func TestDurationsDisabled(t *testing.T) {
	cfg := &Config{}
	assert.Zero(t, cfg.RequestTimeout())
	assert.Zero(t, cfg.OpenTicketsCacheTTL())
}
