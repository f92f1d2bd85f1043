package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
}

func TestLoadConfig(t *testing.T) {
	setTestEnv(t)
	t.Setenv("FEATURED_MAX_RESULTS", "6")
	t.Setenv("FEATURED_CACHE_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Env)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 6, cfg.FeaturedMaxResults)
	assert.Equal(t, 2, cfg.FeaturedMaxPerCategory)
	assert.Equal(t, 30*time.Second, cfg.FeaturedCacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
}

func TestLoadConfigRejectsNonPositiveFeaturedLimits(t *testing.T) {
	setTestEnv(t)
	t.Setenv("FEATURED_MAX_RESULTS", "0")
	t.Setenv("FEATURED_MAX_PER_CATEGORY", "-1")

	_, err := LoadConfig()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, len(verrs))
	for i, v := range verrs {
		fields[i] = v.Field
	}
	assert.Contains(t, fields, "FEATURED_MAX_RESULTS")
	assert.Contains(t, fields, "FEATURED_MAX_PER_CATEGORY")
}

func TestLoadConfigRejectsMalformedNumbers(t *testing.T) {
	setTestEnv(t)
	t.Setenv("FEATURED_MAX_RESULTS", "eight")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "FEATURED_MAX_RESULTS")
}

func TestLoadConfigReadsDockerSecrets(t *testing.T) {
	dir := t.TempDir()
	for name, value := range map[string]string{
		"db_password": "from-secret\n",
		"jwt_secret":  "jwt-from-secret",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o600))
	}
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_SECRET", "ignored")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Production, cfg.Env)
	assert.Equal(t, "from-secret", cfg.DBPassword)
	assert.Equal(t, "jwt-from-secret", cfg.JWTSecret)
}

func TestLoadConfigTrustedProxies(t *testing.T) {
	setTestEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,proxy.local")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "TRUSTED_PROXIES")
}

func TestValidateConfigSQLiteNeedsNoPassword(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PASSWORD", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestValidateConfigUnknownDriver(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DB_DRIVER", "mongo")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("PROD"))
	assert.Equal(t, Test, ParseEnvironment("test"))
	assert.Equal(t, CI, ParseEnvironment("ci"))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.True(t, Production.IsProduction())
}
