package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Config holds the application configuration
type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AppConfig holds app-specific configuration
type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host           string          `yaml:"host"`
	Port           int             `yaml:"port"`
	AllowedOrigins []string        `yaml:"allowed_origins"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	Max        int `yaml:"max"`
	Expiration int `yaml:"expiration"` // seconds
}

// AuthConfig holds token-issuance configuration.
// The two signing secrets are distinct so a leaked access token can
// never be replayed as a refresh token.
type AuthConfig struct {
	Issuer             string `yaml:"issuer"`
	AccessTTLSeconds   int    `yaml:"access_ttl_seconds"`
	RefreshTTLSeconds  int    `yaml:"refresh_ttl_seconds"`
	ToleranceMillis    int    `yaml:"tolerance_millis"`
	AccessTokenSecret  string `yaml:"-"`
	RefreshTokenSecret string `yaml:"-"`
	AdminLogin         string `yaml:"-"`
	AdminPassword      string `yaml:"-"`
}

// AccessTTL returns the access token lifetime
func (a *AuthConfig) AccessTTL() time.Duration {
	if a.AccessTTLSeconds <= 0 {
		return 6 * time.Minute
	}
	return time.Duration(a.AccessTTLSeconds) * time.Second
}

// RefreshTTL returns the refresh token lifetime
func (a *AuthConfig) RefreshTTL() time.Duration {
	if a.RefreshTTLSeconds <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(a.RefreshTTLSeconds) * time.Second
}

// Tolerance returns the session timestamp matching window
func (a *AuthConfig) Tolerance() time.Duration {
	if a.ToleranceMillis <= 0 {
		return time.Second
	}
	return time.Duration(a.ToleranceMillis) * time.Millisecond
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LoggingConfig holds logging-specific configuration
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads configuration from a YAML file and overlays environment secrets
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	env := LoadEnv()
	cfg.Auth.AccessTokenSecret = env.AccessTokenSecret
	cfg.Auth.RefreshTokenSecret = env.RefreshTokenSecret
	cfg.Auth.AdminLogin = env.AdminLogin
	cfg.Auth.AdminPassword = env.AdminPassword

	return &cfg, nil
}

// Address returns the server address in the format "host:port"
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Address returns the Redis address in the format "host:port"
func (r *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// DSN returns the database connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}
