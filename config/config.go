package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerHost  string
	ServerPort  string
	CORSOrigins []string
	// TrustedProxies may set X-Forwarded-For. Empty trusts none, so the
	// client IP is the connection's remote address.
	TrustedProxies []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration. An empty RedisURL disables caching and rate limiting.
	RedisURL      string
	RedisPassword string

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Avatar storage. An empty AWSRegion disables uploads.
	S3BucketName string
	AWSRegion    string

	// Featured grid
	FeaturedMaxResults     int
	FeaturedMaxPerCategory int
	FeaturedCacheTTL       time.Duration

	// Login throttling per client IP
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Env: env}

	var errs []string
	intVar := func(key string, def int) int {
		v, err := getEnvInt(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}
	durVar := func(key string, def time.Duration) time.Duration {
		v, err := getEnvDuration(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}

	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.ServerPort = getEnv("SERVER_PORT", "8000")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:8081,http://localhost:19006"))
	cfg.TrustedProxies = splitList(os.Getenv("TRUSTED_PROXIES"))

	cfg.DBDriver = getEnv("DB_DRIVER", "postgres")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBName = getEnv("DB_NAME", "liqma")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "liqma.db")
	cfg.RedisURL = os.Getenv("REDIS_URL")

	cfg.TokenTTL = durVar("TOKEN_TTL", 24*time.Hour)

	cfg.S3BucketName = getEnv("S3_BUCKET_NAME", "liqma-profile-pictures")
	cfg.AWSRegion = os.Getenv("AWS_REGION")

	cfg.FeaturedMaxResults = intVar("FEATURED_MAX_RESULTS", 8)
	cfg.FeaturedMaxPerCategory = intVar("FEATURED_MAX_PER_CATEGORY", 2)
	cfg.FeaturedCacheTTL = durVar("FEATURED_CACHE_TTL", 5*time.Minute)

	cfg.LoginRateLimit = intVar("LOGIN_RATE_LIMIT", 10)
	cfg.LoginRateWindow = durVar("LOGIN_RATE_WINDOW", time.Minute)

	// Secrets
	switch env {
	case CI, Test:
		// CI and tests pass secrets as environment variables
		cfg.DBPassword = os.Getenv("DB_PASSWORD")
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
		cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	case Development, Production:
		cfg.DBPassword = secretOrEnv("db_password")
		cfg.JWTSecret = secretOrEnv("jwt_secret")
		cfg.RedisPassword = secretOrEnv("redis_password")
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to parse configuration:\n%s", strings.Join(errs, "\n"))
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN returns the connection string for the Postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// secretOrEnv prefers the Docker secret and falls back to the upper-cased env var.
func secretOrEnv(name string) string {
	if v := readSecret(name); v != "" {
		return v
	}
	return os.Getenv(strings.ToUpper(name))
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %q is not a duration", key, v)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
