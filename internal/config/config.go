// Package config loads all runtime configuration from the environment. Every
// component receives its settings through constructors; nothing reads env vars
// at call time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerAddress string

	PostgresDSN string

	JWTSecret            string
	TokenValidityMinutes int

	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	S3Bucket     string
	S3Timeout    time.Duration

	SendgridAPIKey string
	EmailSender    string

	RateLimitPerSecond int
	RateLimitBurst     int
}

func Load() *Config {
	return &Config{
		ServerAddress: GetEnvAsString("SERVER_ADDRESS", ":8080"),

		PostgresDSN: buildPostgresDSN(),

		JWTSecret:            os.Getenv("JWT_SECRET"),
		TokenValidityMinutes: GetEnvAsInt("TOKEN_VALIDITY_VALUE_IN_MINUTES", 60),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisHost:     GetEnvAsString("REDIS_HOST", "localhost"),
		RedisPort:     GetEnvAsString("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       GetEnvAsInt("REDIS_DB", 0),

		AWSRegion:    os.Getenv("AWS_S3_BUCKET_REGION"),
		AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey: os.Getenv("AWS_SECRET_KEY"),
		S3Bucket:     os.Getenv("AWS_S3_BUCKET_NAME"),
		S3Timeout:    GetEnvAsDuration("S3_TIMEOUT", 15*time.Second),

		SendgridAPIKey: os.Getenv("EMAIL_API_KEY"),
		EmailSender:    os.Getenv("EMAIL_SENDER"),

		RateLimitPerSecond: GetEnvAsInt("RATE_LIMIT_PER_SECOND", 20),
		RateLimitBurst:     GetEnvAsInt("RATE_LIMIT_BURST", 40),
	}
}

func buildPostgresDSN() string {
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		GetEnvAsString("DB_HOST", "localhost"),
		GetEnvAsString("DB_PORT", "5432"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
	)
}

// GetEnvAsInt gets environment variable as int with default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration gets environment variable as duration with default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvAsString gets environment variable as string with default value
func GetEnvAsString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
