package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.LoggedIn())
}

func TestSaveThenLoadWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	saved := &Config{
		ServerURL: "https://api.example-gym.test",
		AuthToken: "tok",
		Email:     "desk@example-gym.test",
		Timezone:  "UTC",
	}
	require.NoError(t, saved.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	t.Setenv("MEMBERDESK_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example-gym.test", cfg.ServerURL)
	assert.Equal(t, "tok", cfg.AuthToken)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LoggedIn())
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestGlobalConfigDirHonoursHomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MEMBERDESK_HOME", dir)

	got, err := GetGlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	require.NoError(t, SaveGlobalConfig(&Config{ServerURL: "http://gym.local"}))
	cfg, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://gym.local", cfg.ServerURL)
}

func TestLocationFallsBackToLocal(t *testing.T) {
	assert.Equal(t, "Local", (&Config{Timezone: "Mars/Olympus"}).Location().String())
	var cfg *Config
	assert.Equal(t, "Local", cfg.Location().String())
}
