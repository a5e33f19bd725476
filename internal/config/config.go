package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration, loaded from the environment.
// Call godotenv.Load before Load to pick up a local .env file.
type Config struct {
	Port     string
	LogLevel string
	LogFile  string

	DatabaseURL string

	JWTSecret string

	AWSRegion  string
	AWSBucket  string
	CDNBaseURL string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	ElasticsearchURL string

	OTLPEndpoint   string
	TracingEnabled bool

	Environment string
}

// Load reads configuration from environment variables.
// JWT_SECRET is the only hard requirement.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "8686"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:          getEnvOrDefault("LOG_FILE", "ringconnect.log"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AWSRegion:        getEnvOrDefault("AWS_REGION", "us-east-1"),
		AWSBucket:        os.Getenv("AWS_BUCKET"),
		CDNBaseURL:       os.Getenv("CDN_BASE_URL"),
		RedisHost:        os.Getenv("REDIS_HOST"),
		RedisPort:        getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		ElasticsearchURL: os.Getenv("ELASTICSEARCH_URL"),
		OTLPEndpoint:     getEnvOrDefault("OTLP_ENDPOINT", "localhost:4318"),
		TracingEnabled:   getEnvBool("TRACING_ENABLED", false),
		Environment:      getEnvOrDefault("ENVIRONMENT", "development"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
