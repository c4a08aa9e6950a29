package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, time.UTC, cfg.App.Location)
	assert.Equal(t, AnalyticsSourcePostgres, cfg.Analytics.Source)
	assert.Equal(t, 25, cfg.DB.MaxOpen)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_TIMEZONE", "Asia/Makassar")
	t.Setenv("ANALYTICS_SOURCE", "Mongo")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.villa.id, https://gro.villa.id")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "Asia/Makassar", cfg.App.Location.String())
	assert.Equal(t, AnalyticsSourceMongo, cfg.Analytics.Source)
	assert.Equal(t, []string{"https://admin.villa.id", "https://gro.villa.id"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_JWTSecretRequiredInRelease(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"unset", ""},
		{"blank", "   "},
		{"placeholder", DevJWTSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GIN_MODE", "release")
			t.Setenv("JWT_SECRET", tt.secret)

			_, err := Load()
			assert.ErrorContains(t, err, "JWT_SECRET")
		})
	}
}

func TestLoad_PlaceholderSecretAllowedInDebug(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("JWT_SECRET", DevJWTSecret)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DevJWTSecret, cfg.JWT.Secret)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load()
	assert.ErrorContains(t, err, "APP_TIMEZONE")
}

func TestLoad_InvalidAnalyticsSource(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ANALYTICS_SOURCE", "sqlite")

	_, err := Load()
	assert.ErrorContains(t, err, "ANALYTICS_SOURCE")
}

func TestDBConfig_DSN(t *testing.T) {
	d := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "villa", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=villa sslmode=disable", d.DSN())
}
