package config

import (
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
[server]
http_port = 9090

[database]
dbname = "marketplace"
user = "smc"

[auth]
jwt_secret = "secret"

[redis]
enabled = true
addr = "redis:6379"
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.HTTPPort)
		assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "marketplace", cfg.Database.DBName)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, "redis:6379", cfg.Redis.Addr)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
	})

	t.Run("env overrides secrets", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "from-env")
		t.Setenv("DB_PASSWORD", "db-pass")

		path := writeConfig(t, `
[database]
dbname = "marketplace"
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
		assert.Equal(t, "db-pass", cfg.Database.Password)
		assert.Contains(t, cfg.Database.DSN(), "password=db-pass")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		path := writeConfig(t, `
[database]
dbname = "marketplace"
`)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}

func TestValidate_CouponExpiryInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		wantErr  bool
	}{
		{"positive", 60, false},
		{"zero", 0, true},
		{"negative", -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Database.DBName = "marketplace"
			cfg.Auth.JWTSecret = "secret"
			cfg.Workers.CouponExpiryIntervalSeconds = tt.interval

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRateLimitConfig_TrustedProxyPrefixes(t *testing.T) {
	t.Run("cidr and single ip", func(t *testing.T) {
		cfg := RateLimitConfig{TrustedProxies: []string{"10.0.0.0/8", "192.168.1.7", "fd00::/8"}}

		prefixes, err := cfg.TrustedProxyPrefixes()
		require.NoError(t, err)
		assert.Equal(t, []netip.Prefix{
			netip.MustParsePrefix("10.0.0.0/8"),
			netip.MustParsePrefix("192.168.1.7/32"),
			netip.MustParsePrefix("fd00::/8"),
		}, prefixes)
	})

	t.Run("garbage entry fails validation", func(t *testing.T) {
		cfg := defaults()
		cfg.Database.DBName = "marketplace"
		cfg.Auth.JWTSecret = "secret"
		cfg.RateLimit.TrustedProxies = []string{"proxy.local"}

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})
}
