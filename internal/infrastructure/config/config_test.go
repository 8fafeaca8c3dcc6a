package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	keys := []string{
		"ACP_APP_NAME",
		"ACP_APP_ENV",
		"ACP_APP_PORT",
		"ACP_REDIS_ENABLED",
		"ACP_REDIS_HOST",
		"ACP_REDIS_PORT",
		"ACP_SESSION_SECRET",
		"ACP_SESSION_SECURE",
		"ACP_SESSION_SAME_SITE",
		"ACP_SESSION_TTL",
		"ACP_SESSION_ALLOW_IN_MEMORY_FALLBACK",
		"ACP_AUTH_JWT_SECRET",
		"ACP_AUTH_PUBLIC_KEY",
		"ACP_AUTH_SYSTEM_CLIENT_ID",
		"ACP_AUTH_SYSTEM_CLIENT_SECRET",
		"ACP_APIS_ACCREDITED_PROGRAMMES_URL",
		"ACP_APIS_ACCREDITED_PROGRAMMES_TIMEOUT",
		"ACP_TELEMETRY_SAMPLING_RATIO",
	}
	originalEnv := make(map[string]string, len(keys))
	for _, k := range keys {
		originalEnv[k] = os.Getenv(k)
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "accredited-programmes-ui", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "3000", cfg.App.Port)
		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
		assert.Equal(t, "acp.session", cfg.Session.CookieName)
		assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
		assert.Equal(t, "lax", cfg.Session.SameSite)
		assert.True(t, cfg.Session.AllowInMemoryFallback)
		assert.Equal(t, 10*time.Second, cfg.APIs.AccreditedProgrammes.Timeout)
		assert.Equal(t, 10*time.Second, cfg.APIs.ManageUsers.Timeout)
		assert.Equal(t, "accredited-programmes-ui", cfg.Telemetry.ServiceName)
		assert.Equal(t, time.Minute, cfg.Telemetry.MetricsExportInterval)
		assert.False(t, cfg.Telemetry.MetricsEnabled)
		assert.NotEmpty(t, cfg.HTTP.CaseListPrefixes)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("loads values from environment variables with ACP prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("ACP_APP_NAME", "acp-test")
		os.Setenv("ACP_APP_PORT", "9000")
		os.Setenv("ACP_REDIS_ENABLED", "false")
		os.Setenv("ACP_REDIS_HOST", "redis.local")
		os.Setenv("ACP_REDIS_PORT", "6380")
		os.Setenv("ACP_SESSION_TTL", "30m")
		os.Setenv("ACP_APIS_ACCREDITED_PROGRAMMES_URL", "https://programmes.example.com")
		os.Setenv("ACP_APIS_ACCREDITED_PROGRAMMES_TIMEOUT", "3s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "acp-test", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.False(t, cfg.Redis.Enabled)
		assert.Equal(t, "redis.local:6380", cfg.Redis.Addr())
		assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
		assert.Equal(t, "https://programmes.example.com", cfg.APIs.AccreditedProgrammes.URL)
		assert.Equal(t, 3*time.Second, cfg.APIs.AccreditedProgrammes.Timeout)
	})

	t.Run("rejects an invalid API URL", func(t *testing.T) {
		clearEnv()
		os.Setenv("ACP_APIS_ACCREDITED_PROGRAMMES_URL", "not a url")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "apis.accredited_programmes.url")
	})

	t.Run("rejects an unknown same site policy", func(t *testing.T) {
		clearEnv()
		os.Setenv("ACP_SESSION_SAME_SITE", "sometimes")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session.same_site")
	})

	t.Run("rejects sampling ratio out of range", func(t *testing.T) {
		clearEnv()
		os.Setenv("ACP_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})

	t.Run("production requires secrets", func(t *testing.T) {
		clearEnv()
		os.Setenv("ACP_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "auth.jwt_secret")
	})

	t.Run("production accepts a public key instead of a shared secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("ACP_APP_ENV", "production")
		os.Setenv("ACP_AUTH_PUBLIC_KEY", "-----BEGIN PUBLIC KEY-----")

		_, err := Load()
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "auth.jwt_secret")
		assert.Contains(t, err.Error(), "session.secret")
	})

	t.Run("production requires redis without fallback", func(t *testing.T) {
		clearEnv()
		os.Setenv("ACP_APP_ENV", "production")
		os.Setenv("ACP_AUTH_JWT_SECRET", "jwt-secret")
		os.Setenv("ACP_SESSION_SECRET", "a-very-long-session-secret-of-32-chars")
		os.Setenv("ACP_AUTH_SYSTEM_CLIENT_ID", "client")
		os.Setenv("ACP_AUTH_SYSTEM_CLIENT_SECRET", "secret")
		os.Setenv("ACP_SESSION_SECURE", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "in-memory session fallback")

		os.Setenv("ACP_SESSION_ALLOW_IN_MEMORY_FALLBACK", "false")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}
