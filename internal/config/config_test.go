package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, ".storefront", cfg.StorageDir)
	assert.Equal(t, 720, cfg.StateTTL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.example.com")
	t.Setenv("BACKEND_API_KEY", "key-123")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BackendURL)
	assert.Equal(t, "key-123", cfg.BackendAPIKey)
	assert.Equal(t, "redis", cfg.StorageBackend)
	assert.Equal(t, "redis.internal:6379", cfg.RedisAddr)
}

func TestLoad_RejectsUnknownStorageBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "carrier-pigeon")

	cfg, err := Load()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid storage backend")
}

func TestLoad_RejectsBadTimeout(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT", "0s")

	cfg, err := Load()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid backend timeout")
}
