package config

import (
	"fmt"
	"net"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return "configuration validation failed:\n" + strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	for _, p := range cfg.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				add("TRUSTED_PROXIES", fmt.Sprintf("%q is not an IP or CIDR", p))
			}
		}
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for the postgres driver")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for the postgres driver")
		}
		if cfg.DBPassword == "" {
			if cfg.Env == CI || cfg.Env == Test {
				add("DB_PASSWORD", "environment variable is required")
			} else {
				add("db_password", "secret is required")
			}
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite driver")
		}
	case "memory":
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == CI || cfg.Env == Test {
			add("JWT_SECRET", "environment variable is required")
		} else {
			add("jwt_secret", "secret is required")
		}
	}
	if cfg.TokenTTL <= 0 {
		add("TOKEN_TTL", "must be positive")
	}

	// The selector rejects non-positive limits; catch them before startup.
	if cfg.FeaturedMaxResults <= 0 {
		add("FEATURED_MAX_RESULTS", "must be positive")
	}
	if cfg.FeaturedMaxPerCategory <= 0 {
		add("FEATURED_MAX_PER_CATEGORY", "must be positive")
	}
	if cfg.FeaturedCacheTTL <= 0 {
		add("FEATURED_CACHE_TTL", "must be positive")
	}

	if cfg.LoginRateLimit <= 0 {
		add("LOGIN_RATE_LIMIT", "must be positive")
	}
	if cfg.LoginRateWindow <= 0 {
		add("LOGIN_RATE_WINDOW", "must be positive")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
