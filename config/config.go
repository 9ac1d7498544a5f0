package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string // production, staging, dev

	// MongoDB
	MongoURI string

	// Auth
	JWTSecret string

	// Redis (profile cache)
	RedisAddr     string
	RedisPassword string

	// Cloudinary (image uploads)
	CloudinaryURL string

	// CORS
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("MATARO_ENV", "dev"),

		MongoURI: getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
