package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "http://localhost:8080", cfg.Editor.PublicBaseURL)
	assert.False(t, cfg.Editor.ExtractOnSave)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("EDITOR_INTERNAL_HOST", "documents")
	t.Setenv("EDITOR_EXTRACT_ON_SAVE", "true")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.False(t, cfg.DBEnabled)
	assert.Equal(t, 15432, cfg.Database.Port)
	assert.Equal(t, "documents", cfg.Editor.InternalHost)
	assert.True(t, cfg.Editor.ExtractOnSave)
}

func TestLoadBadPortFallsBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	cfg := Load()
	assert.Equal(t, 5432, cfg.Database.Port)
}
