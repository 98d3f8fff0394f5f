package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co/")
	t.Setenv("SUPABASE_KEY", "anon-key")

	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://proj.supabase.co", c.Platform.URL)
	assert.Equal(t, PlatformSupabase, c.Platform.Driver)
	assert.Equal(t, ProfilesPostgREST, c.Profiles.Store)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.False(t, c.Server.TrustProxyHeaders)
	assert.Equal(t, 10*time.Second, c.Platform.Timeout)
	assert.False(t, c.Rate.Enabled)
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  cors_allowed_origins: ["https://app.example.com"]
platform:
  driver: memory
  timeout: 3s
  memory:
    jwt_secret: "`+testSecret+`"
rate:
  enabled: true
  limit: 5
`), 0o600))
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.io,https://b.io")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.Server.Addr)
	assert.Equal(t, []string{"https://a.io", "https://b.io"}, c.Server.CORSAllowedOrigins)
	assert.True(t, c.Server.TrustProxyHeaders)
	assert.Equal(t, 3*time.Second, c.Platform.Timeout)
	assert.Equal(t, ProfilesMemory, c.Profiles.Store)
	assert.True(t, c.Rate.Enabled)
	assert.Equal(t, 5, c.Rate.Limit)
	assert.Equal(t, RateMemory, c.Rate.Backend)
}

func TestValidate(t *testing.T) {
	t.Run("supabase needs credentials", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "")
		t.Setenv("SUPABASE_KEY", "")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SUPABASE_URL")
		assert.Contains(t, err.Error(), "SUPABASE_KEY")
	})

	t.Run("postgres store needs dsn", func(t *testing.T) {
		t.Setenv("PLATFORM_DRIVER", "memory")
		t.Setenv("MEMORY_JWT_SECRET", testSecret)
		t.Setenv("PROFILE_STORE", "postgres")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	})

	t.Run("redis backend needs addr", func(t *testing.T) {
		t.Setenv("PLATFORM_DRIVER", "memory")
		t.Setenv("MEMORY_JWT_SECRET", testSecret)
		t.Setenv("RATE_ENABLED", "true")
		t.Setenv("RATE_BACKEND", "redis")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REDIS_ADDR")
	})

	t.Run("short memory secret", func(t *testing.T) {
		t.Setenv("PLATFORM_DRIVER", "memory")
		t.Setenv("MEMORY_JWT_SECRET", "short")
		_, err := Load("")
		assert.Error(t, err)
	})
}
