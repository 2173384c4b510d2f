package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DB_DRIVER", "DB_DSN", "LOG_LEVEL", "LOG_FORMAT", "APP_NAME", "SPA_TIMEZONE",
		"AUTH_MODE", "TOKEN_KEY", "TOKEN_TTL", "IAM_BASE_URL", "IAM_API_KEY", "CORS_ORIGINS",
		"LOGIN_RPS", "LOGIN_BURST", "TRUST_PROXY", "BOOTSTRAP_ADMIN_EMAIL", "BOOTSTRAP_ADMIN_PASSWORD",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_KEY", strings.Repeat("ab", 32))

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, AuthToken, cfg.AuthMode)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 5, cfg.LoginBurst)
}

func TestFromEnv_DSNImpliesPostgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_MODE", "dev")
	t.Setenv("DB_DSN", "postgres://spa@localhost/spa")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
}

func TestFromEnv_SQLiteAndTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_MODE", "dev")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file:spa.db")
	t.Setenv("SPA_TIMEZONE", "America/Lima")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "America/Lima", cfg.Timezone.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"sqlite without dsn": {"DB_DRIVER": "sqlite", "AUTH_MODE": "dev"},
		"unknown driver":     {"DB_DRIVER": "mongo", "AUTH_MODE": "dev"},
		"bad timezone":       {"SPA_TIMEZONE": "Mars/Olympus", "AUTH_MODE": "dev"},
		"token without key":  {"AUTH_MODE": "token"},
		"no mode no key":     {},
		"bad trust proxy":    {"AUTH_MODE": "dev", "TRUST_PROXY": "maybe"},
		"remote without iam": {"AUTH_MODE": "remote"},
		"unknown auth":       {"AUTH_MODE": "magic"},
		"bad ttl":            {"TOKEN_TTL": "forever", "AUTH_MODE": "dev"},
		"bad login burst":    {"LOGIN_BURST": "many", "AUTH_MODE": "dev"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_DevModeIsExplicit(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_MODE", "dev")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, AuthDev, cfg.AuthMode)
	assert.True(t, cfg.TrustProxy)
}
