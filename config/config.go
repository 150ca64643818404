package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBDriver      string
	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MigrationsDir string

	// Redis cache; disabled when RedisURL is empty
	RedisURL string
	CacheTTL time.Duration

	// Image storage; disabled when S3BucketName is empty
	S3BucketName string
	AWSRegion    string

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "")
	v.SetDefault("server_port", "5000")
	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("database_url", "")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "recipes")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("sqlite_path", "recipes.db")
	v.SetDefault("migrations_dir", "migrations")
	v.SetDefault("redis_url", "")
	v.SetDefault("cache_ttl", "5m")
	v.SetDefault("s3_bucket_name", "")
	v.SetDefault("aws_region", "")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "")
}

// LoadConfig reads configuration from environment variables, an optional
// config.yml (working directory or CONFIG_DIR) and the secrets directory.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	env := GetEnvironment()
	cfg := &Config{
		Environment:   env,
		ServerHost:    v.GetString("server_host"),
		ServerPort:    v.GetString("server_port"),
		DBDriver:      strings.ToLower(v.GetString("db_driver")),
		DatabaseURL:   v.GetString("database_url"),
		DBHost:        v.GetString("db_host"),
		DBPort:        v.GetString("db_port"),
		DBUser:        v.GetString("db_user"),
		DBPassword:    v.GetString("db_password"),
		DBName:        v.GetString("db_name"),
		DBSSLMode:     v.GetString("db_ssl_mode"),
		SQLitePath:    v.GetString("sqlite_path"),
		MigrationsDir: v.GetString("migrations_dir"),
		RedisURL:      v.GetString("redis_url"),
		CacheTTL:      v.GetDuration("cache_ttl"),
		S3BucketName:  v.GetString("s3_bucket_name"),
		AWSRegion:     v.GetString("aws_region"),
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("cors_allowed_origins"))

	// Docker secrets fill in anything the environment left empty
	if cfg.DBPassword == "" {
		cfg.DBPassword = readSecret("db_password")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = readSecret("redis_url")
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
		if env == Production {
			cfg.LogFormat = "json"
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// CacheEnabled reports whether a redis cache is configured
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// ImageStorageEnabled reports whether recipe images can be uploaded
func (c *Config) ImageStorageEnabled() bool {
	return c.S3BucketName != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
