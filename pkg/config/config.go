package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Groq (OpenAI-compatible) chat completions API. The key is required by
	// every pipeline endpoint; its absence is reported per request so the
	// tracker and snapshot endpoints stay usable without it.
	GroqAPIKey string
	GroqBase   string
	GroqModel  string

	// Optional backends. Empty values select the in-memory fallbacks.
	DatabaseURL string
	RedisURL    string

	MaxUploadMB int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		GroqAPIKey:  os.Getenv("GROQ_API_KEY"),
		GroqBase:    getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 15),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
