package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Tokens
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTLMin  int
	RefreshTokenTTLDay int

	// Media storage (S3-compatible)
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PublicBaseURL string

	// Frontend
	FrontendURL  string
	CookieSecure bool
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8000"),
		Env:                getEnvOrDefault("ENV", "development"),
		DatabaseURL:        mustGetEnv("DATABASE_URL"),
		RedisURL:           mustGetEnv("REDIS_URL"),
		AccessTokenSecret:  mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: mustGetEnv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTLMin:  getEnvAsIntOrDefault("ACCESS_TOKEN_TTL_MINUTES", 15),
		RefreshTokenTTLDay: getEnvAsIntOrDefault("REFRESH_TOKEN_TTL_DAYS", 10),
		S3Bucket:           mustGetEnv("S3_BUCKET"),
		S3Region:           getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:         getEnvOrDefault("S3_ENDPOINT", ""),
		S3PublicBaseURL:    getEnvOrDefault("S3_PUBLIC_BASE_URL", ""),
		FrontendURL:        getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		CookieSecure:       getEnvAsBoolOrDefault("COOKIE_SECURE", true),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
