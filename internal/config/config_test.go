package config

import (
	"testing"
	"time"

	"gohappy/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "GIN_MODE", "DATA_SOURCE", "DATA_FILE", "DATABASE_URL",
		"PPROF_ENABLED", "PPROF_PORT", "LOG_LEVEL", "SHUTDOWN_TIMEOUT", "DB_MAX_OPEN", "DB_MAX_IDLE"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, SourceFile, cfg.Data.Source)
	assert.Equal(t, "./data_cleaned.csv", cfg.Data.File)
	assert.False(t, cfg.Database.Enabled())
	assert.False(t, cfg.Profiling.Enabled)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_SOURCE", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/happy?sslmode=disable")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("DB_MAX_OPEN", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, SourcePostgres, cfg.Data.Source)
	assert.True(t, cfg.Database.Enabled())
	assert.True(t, cfg.Profiling.Enabled)
	assert.Equal(t, 10, cfg.Database.MaxOpen)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"DATA_SOURCE": "postgres"}},
		{"unknown source", map[string]string{"DATA_SOURCE": "s3"}},
		{"non numeric port", map[string]string{"PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
