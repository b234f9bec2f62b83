package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"JWT_SECRET", "PORT", "APP_ENV",
		"STORAGE_ENDPOINT", "STORAGE_ACCESS_KEY", "STORAGE_SECRET_KEY",
		"STORAGE_BUCKET", "STORAGE_USE_SSL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "layers", cfg.StorageBucket)
	assert.False(t, cfg.StorageUseSSL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("STORAGE_ENDPOINT", "fra1.digitaloceanspaces.com")
	t.Setenv("STORAGE_USE_SSL", "true")

	cfg := Load()
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "supersecret", cfg.JWTSecret)
	assert.Equal(t, "fra1.digitaloceanspaces.com", cfg.StorageEndpoint)
	assert.True(t, cfg.StorageUseSSL)
	assert.True(t, cfg.IsProduction())
}
