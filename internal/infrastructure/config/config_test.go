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

	assert.Equal(t, "storefront-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "2024-10", cfg.Storefront.APIVersion)
	assert.Equal(t, "https://api.resend.com", cfg.Email.APIBaseURL)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	// secure default: no CORS origins until configured
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SHOP_DATABASE_HOST", "db.internal")
	t.Setenv("SHOP_DATABASE_PORT", "5433")
	t.Setenv("SHOP_STOREFRONT_STORE_DOMAIN", "packmart.myshopify.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "packmart.myshopify.com", cfg.Storefront.StoreDomain)
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Setenv("SHOP_APP_ENV", "production")

	// missing secrets must fail fast in production
	_, err := Load()
	require.Error(t, err)

	t.Setenv("SHOP_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("SHOP_DATABASE_PASSWORD", "hunter22hunter22")
	t.Setenv("SHOP_DATABASE_SSLMODE", "require")
	t.Setenv("SHOP_STOREFRONT_ACCESS_TOKEN", "shpat_test")
	t.Setenv("SHOP_EMAIL_API_KEY", "re_test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "storefront",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "sslmode=disable")
	// password must be escaped, not embedded raw
	assert.NotContains(t, dsn, "p@ss/word")
}
