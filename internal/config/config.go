package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseURL string // empty keeps run history in memory
	LogLevel    string
	MaxUpload   int64 // request body limit in bytes
	ServerURL   string
}

const defaultMaxUpload = 64 << 20

// Load reads HUF_* environment variables, falling back to defaults.
func Load() Config {
	cfg := Config{
		Port:        getenv("HUF_PORT", "8080"),
		DatabaseURL: os.Getenv("HUF_DATABASE_URL"),
		LogLevel:    getenv("HUF_LOG_LEVEL", "info"),
		MaxUpload:   defaultMaxUpload,
		ServerURL:   getenv("HUF_SERVER_URL", "http://localhost:8080"),
	}
	if v, err := strconv.ParseInt(os.Getenv("HUF_MAX_UPLOAD"), 10, 64); err == nil && v > 0 {
		cfg.MaxUpload = v
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
