package config

import (
	"os"
	"strconv"
)

// Config for the labdoc-data HTTP API.
type Config struct {
	HTTP struct {
		Addr string
	}
	DBEnabled bool
	Database  struct {
		Host     string
		Port     int
		User     string
		Password string
		Database string
		SSLMode  string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Editor EditorConfig
	Log    struct {
		Level  string
		Format string
	}
}

// EditorConfig wires the external document editor integration.
type EditorConfig struct {
	// PublicBaseURL is the address of THIS service as seen by the editor
	// container (download/callback URLs are built from it).
	PublicBaseURL string
	// InternalHost replaces loopback hostnames in the temporary download
	// URLs the editor reports, for deployments behind a reverse proxy.
	InternalHost string
	// ExtractOnSave re-extracts relational fields from the edited document
	// on every save callback. Off by default: a hand-edited report is
	// allowed to diverge from the recorded fields until someone opts in.
	ExtractOnSave bool
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// Default to true for local dev; when the DB is unavailable the service
	// falls back to in-memory repositories.
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "labdoc")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Editor.PublicBaseURL = getEnv("EDITOR_PUBLIC_BASE_URL", "http://localhost:8080")
	cfg.Editor.InternalHost = getEnv("EDITOR_INTERNAL_HOST", "")
	cfg.Editor.ExtractOnSave = getEnv("EDITOR_EXTRACT_ON_SAVE", "false") == "true"

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
