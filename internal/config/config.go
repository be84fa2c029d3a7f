package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort              string        `yaml:"http_port"`
	DBDriver              string        `yaml:"db_driver"`
	DBHost                string        `yaml:"db_host"`
	DBPort                string        `yaml:"db_port"`
	DBUser                string        `yaml:"db_user"`
	DBPassword            string        `yaml:"db_password"`
	DBName                string        `yaml:"db_name"`
	DBSSLMode             string        `yaml:"db_sslmode"`
	SQLitePath            string        `yaml:"sqlite_path"`
	RedisHost             string        `yaml:"redis_host"`
	RedisPort             string        `yaml:"redis_port"`
	SessionSecret         string        `yaml:"session_secret"`
	JWTSecret             string        `yaml:"jwt_secret"`
	JWTExpiresIn          time.Duration `yaml:"jwt_expires_in"`
	GinMode               string        `yaml:"gin_mode"`
	CORSOrigins           []string      `yaml:"cors_allowed_origins"`
	RestaurantEmailDomain string        `yaml:"restaurant_email_domain"`
	LogLevel              string        `yaml:"log_level"`
	// RateLimitRPS is the sustained per-client request rate; 0 disables limiting.
	RateLimitRPS          float64       `yaml:"rate_limit_rps"`
	RateLimitBurst        int           `yaml:"rate_limit_burst"`
}

func defaults() *Config {
	return &Config{
		HTTPPort:       "8080",
		DBDriver:       "postgres",
		DBHost:         "localhost",
		DBPort:         "5432",
		DBUser:         "roster",
		DBPassword:     "rosterpassword",
		DBName:         "roster",
		DBSSLMode:      "disable",
		SQLitePath:     "roster.db",
		RedisPort:      "6379",
		SessionSecret:  "default-secret-key-change-me",
		JWTExpiresIn:   24 * time.Hour,
		GinMode:        "debug",
		CORSOrigins:    []string{"http://localhost:3000"},
		LogLevel:       "info",
		RateLimitRPS:   10,
		RateLimitBurst: 20,
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.HTTPPort = getEnv("HTTP_PORT", cfg.HTTPPort)
	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBSSLMode = getEnv("DB_SSLMODE", cfg.DBSSLMode)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.RedisHost = getEnv("REDIS_HOST", cfg.RedisHost)
	cfg.RedisPort = getEnv("REDIS_PORT", cfg.RedisPort)
	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.RestaurantEmailDomain = getEnv("RESTAURANT_EMAIL_DOMAIN", cfg.RestaurantEmailDomain)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
		}
		cfg.JWTExpiresIn = d
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimitRPS = rps
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimitBurst = burst
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if c.RateLimitRPS < 0 {
		return errors.New("RATE_LIMIT_RPS must not be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters in release mode")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// SigningSecret falls back to a development-only secret outside release mode.
func (c *Config) SigningSecret() string {
	if c.JWTSecret == "" {
		return "development-only-jwt-secret"
	}
	return c.JWTSecret
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
