// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	// Server settings
	Port    string
	GinMode string // debug, release, test

	// Session settings
	SessionName   string
	SessionSecret string
	SessionMaxAge time.Duration

	// Collaborator endpoints
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	OTLPEndpoint  string

	// Login rate limiting
	LoginMaxAttempts int
	LoginWindow      time.Duration

	// Template location, relative to the working directory.
	TemplateGlob string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		SessionName:   getEnv("SESSION_NAME", "ap_session"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionMaxAge: time.Duration(getEnvAsInt("SESSION_MAX_AGE_SECONDS", 86400)) * time.Second,

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "account_portal"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		OTLPEndpoint:  getEnv("OTLP_ENDPOINT", "otel-collector:4317"),

		LoginMaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindow:      time.Duration(getEnvAsInt("LOGIN_WINDOW_SECONDS", 900)) * time.Second,

		TemplateGlob: getEnv("TEMPLATE_GLOB", "web/templates/*.html"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that are unsafe to run with. Local
// development is permissive; release mode is strict.
func (c *Config) Validate() error {
	if c.GinMode == "release" {
		if c.SessionSecret == "" {
			return fmt.Errorf("SESSION_SECRET is required in release mode")
		}
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required in release mode")
		}
	}
	return nil
}

// getEnv returns the value of the environment variable, or the default
// when it is unset or empty.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an integer environment variable, falling back to the
// default on absence or parse failure.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
