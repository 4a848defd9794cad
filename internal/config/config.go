// Package config loads process configuration from the environment, with a
// .env file loaded first if one is present. Grounded on the teacher's
// dependency on joho/godotenv (never itself imported by a retrieved teacher
// file, but the standard companion to it in the Go ecosystem) plus
// udisondev-la2go/internal/config/config.go's defaults-then-override shape.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is everything cmd/server needs to wire the arena up.
type Config struct {
	Port              string
	WordListPath      string
	PromptsPath       string
	DatabaseURL       string
	AdjunctAuthEnabled bool
	RateLimitPerSec   float64
	RateLimitBurst    int
}

// Load reads a .env file if present (missing is not an error, matching
// dotenvy's behavior in the original Rust source) and then layers real
// environment variables over the defaults below.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config.Load] .env present but unreadable: %v", err)
	}

	return Config{
		Port:               envOrDefault("PORT", "8080"),
		WordListPath:       envOrDefault("WORD_LIST_PATH", "./data/words.txt"),
		PromptsPath:        envOrDefault("PROMPTS_PATH", "./data/prompts.txt"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AdjunctAuthEnabled: envBool("ADJUNCT_AUTH_ENABLED", false),
		RateLimitPerSec:    envFloat("RATE_LIMIT_PER_SEC", 8),
		RateLimitBurst:     envInt("RATE_LIMIT_BURST", 24),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] invalid bool for %s=%q, using default", key, v)
		return fallback
	}
	return parsed
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid int for %s=%q, using default", key, v)
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] invalid float for %s=%q, using default", key, v)
		return fallback
	}
	return parsed
}
