package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv("NODEWORK_ADDR", ":7000")
	t.Setenv("NODEWORK_ALLOWED_ORIGINS", "http://a.test, http://b.test,,")
	t.Setenv("NODEWORK_DB", "/tmp/x.db")
	t.Setenv("NODEWORK_STORAGE_KEY", "scratch")
	t.Setenv("NODEWORK_AUTOSAVE", "true")
	t.Setenv("NODEWORK_LOG_LEVEL", "DEBUG")
	t.Setenv("NODEWORK_LOG_DEVELOPMENT", "maybe")

	cfg := DefaultConfig()
	rejected := cfg.ApplyEnv()

	assert.Equal(t, []string{"NODEWORK_LOG_DEVELOPMENT"}, rejected)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
	assert.Equal(t, "scratch", cfg.Storage.Key)
	assert.True(t, cfg.Storage.Autosave)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvUnset(t *testing.T) {
	for _, o := range EnvOverrides {
		t.Setenv(o.Name, "")
	}

	cfg := DefaultConfig()
	assert.Empty(t, cfg.ApplyEnv())
	assert.Equal(t, DefaultConfig(), cfg)
}
