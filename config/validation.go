package config

import (
	"errors"
	"fmt"
	"strconv"
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

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// ValidateConfig checks the configuration for the current environment
func ValidateConfig(cfg *Config) error {
	var errs []error

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" && cfg.DBHost == "" {
			errs = append(errs, ValidationError{Field: "DB_HOST", Message: "required when DATABASE_URL is not set"})
		}
		// Production must never run against a passwordless database
		if cfg.Environment.IsProduction() && cfg.DatabaseURL == "" && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: "db_password secret is required in production"})
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "SQLITE_PATH", Message: "required for the sqlite driver"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	if cfg.CacheEnabled() && cfg.CacheTTL <= 0 {
		errs = append(errs, ValidationError{Field: "CACHE_TTL", Message: "must be positive"})
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		errs = append(errs, ValidationError{Field: "LOG_LEVEL", Message: fmt.Sprintf("unknown level %q", cfg.LogLevel)})
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, ValidationError{Field: "LOG_FORMAT", Message: fmt.Sprintf("unknown format %q", cfg.LogFormat)})
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		errs = append(errs, ValidationError{Field: "CORS_ALLOWED_ORIGINS", Message: "at least one origin is required"})
	}

	return errors.Join(errs...)
}
