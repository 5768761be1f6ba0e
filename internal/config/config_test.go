package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", settings.Database.Host)
	assert.Equal(t, 5432, settings.Database.Port)
	assert.Equal(t, "stack_radar", settings.Database.Name)
	assert.Equal(t, 5, settings.Database.MinPoolSize)
	assert.Equal(t, 20, settings.Database.MaxPoolSize)
	assert.Equal(t, "HS256", settings.Auth.Algorithm)
	assert.Equal(t, 1440, settings.Auth.TokenExpireMinutes)
	assert.False(t, settings.App.Debug)
	assert.Equal(t, "/api/v1", settings.App.APIPrefix)
	assert.Equal(t,
		[]string{"http://localhost:5173", "http://localhost:3000"},
		settings.App.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "6432")
	t.Setenv("POSTGRES_DB", "radar_test")
	t.Setenv("SECRET_KEY", "unit-test-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "60")
	t.Setenv("DEBUG", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://radar.example.com, https://admin.example.com")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", settings.Database.Host)
	assert.Equal(t, 6432, settings.Database.Port)
	assert.Equal(t, "radar_test", settings.Database.Name)
	assert.Equal(t, "unit-test-secret", settings.Auth.SecretKey)
	assert.Equal(t, 60, settings.Auth.TokenExpireMinutes)
	assert.True(t, settings.App.Debug)
	assert.Equal(t,
		[]string{"https://radar.example.com", "https://admin.example.com"},
		settings.App.AllowedOrigins)
}

func TestLoadRejectsInvalidPoolSizes(t *testing.T) {
	t.Setenv("DB_MIN_POOL_SIZE", "30")
	t.Setenv("DB_MAX_POOL_SIZE", "10")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "radar",
		Password: "secret",
		Name:     "stack_radar",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=radar password=secret dbname=stack_radar sslmode=disable",
		cfg.DSN())
}
