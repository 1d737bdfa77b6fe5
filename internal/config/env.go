package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvironmentType represents the application environment
type EnvironmentType string

const (
	EnvironmentDevelopment EnvironmentType = "development"
	EnvironmentProduction  EnvironmentType = "production"
)

// String returns the string representation of the environment type
func (e EnvironmentType) String() string {
	return string(e)
}

// IsValid checks if the environment type is valid
func (e EnvironmentType) IsValid() bool {
	switch e {
	case EnvironmentDevelopment, EnvironmentProduction:
		return true
	default:
		return false
	}
}

// Environment holds the environment variables
type Environment struct {
	Environment        EnvironmentType `env:"ENVIRONMENT"`
	ConfigPath         string          `env:"CONFIG_PATH"`
	AccessTokenSecret  string          `env:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret string          `env:"REFRESH_TOKEN_SECRET"`
	AdminLogin         string          `env:"ADMIN_LOGIN"`
	AdminPassword      string          `env:"ADMIN_PASSWORD"`
}

// LoadEnv loads the environment variables, reading a .env file when present
func LoadEnv() *Environment {
	_ = godotenv.Load()

	envStr := getEnv("ENVIRONMENT", string(EnvironmentDevelopment))
	envStr = strings.TrimSpace(envStr)
	envStr = strings.ToLower(envStr)
	envType := EnvironmentType(envStr)

	// Validate and default to development if invalid
	if !envType.IsValid() {
		envType = EnvironmentDevelopment
	}

	return &Environment{
		Environment:        envType,
		ConfigPath:         getEnv("CONFIG_PATH", "config.yaml"),
		AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", "dev-access-secret"),
		RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", "dev-refresh-secret"),
		AdminLogin:         getEnv("ADMIN_LOGIN", "admin"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", "qwerty"),
	}
}

// getEnv gets the environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
