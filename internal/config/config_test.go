package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLookuperDefaults(t *testing.T) {
	cfg, err := FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, StoreXano, cfg.StoreBackend)
	assert.Equal(t, 30*time.Minute, cfg.EmailTokenTTL)
	assert.Equal(t, "refresh_token", cfg.Zoho.GrantType)
	assert.Equal(t, "https://accounts.zoho.com", cfg.Zoho.AccountsURL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 9, cfg.ReportHour)
	assert.False(t, cfg.IsProduction())
}

func TestFromLookuperOverrides(t *testing.T) {
	cfg, err := FromLookuper(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":            "s3cret",
		"SERVER_PORT":           "5050",
		"APP_ENV":               "production",
		"REFRESH_TOKEN":         "1000.abc",
		"CLIENT_ID":             "client",
		"XANO_VERIFICATION_URL": "https://x.example/api:verify",
		"STORE_BACKEND":         "postgres",
		"DATABASE_URL":          "postgres://localhost/intake",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":5050", cfg.Addr())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "1000.abc", cfg.Zoho.RefreshToken)
	assert.Equal(t, "client", cfg.Zoho.ClientID)
	assert.Equal(t, "https://x.example/api:verify", cfg.Xano.VerificationURL)
	assert.Equal(t, StorePostgres, cfg.StoreBackend)
}

func TestFromLookuperRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"unknown backend", map[string]string{"JWT_SECRET": "x", "STORE_BACKEND": "redis"}},
		{"postgres without dsn", map[string]string{"JWT_SECRET": "x", "STORE_BACKEND": "postgres"}},
		{"report hour out of range", map[string]string{"JWT_SECRET": "x", "REPORT_HOUR": "24"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookuper(context.Background(), envconfig.MapLookuper(tt.env))
			assert.Error(t, err)
		})
	}
}
