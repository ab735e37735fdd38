package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("REDIS_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.DBDriver)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, DefaultMaxUploadBytes, cfg.MaxUploadBytes)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("SEARCH_PROVIDER_URL", "http://mcp:9423/")
	t.Setenv("SEARCH_TIMEOUT", "5s")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "s3", cfg.StorageDriver)
	assert.Equal(t, "http://mcp:9423", cfg.SearchProviderURL)
	assert.Equal(t, 5*time.Second, cfg.SearchTimeout)
	assert.Equal(t, int64(2048), cfg.MaxUploadBytes)
}

func TestGetEnvIntInvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("SOME_BOOL", "false")
	assert.False(t, getEnvBool("SOME_BOOL", true))

	t.Setenv("SOME_BOOL", "nope")
	assert.True(t, getEnvBool("SOME_BOOL", true))
}
