package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	configDir, err := GetConfigDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644))
}

func TestReloadNotifiesCallbacks(t *testing.T) {
	setupTestEnv(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	var got []*Config
	m.OnConfigChange(func(cfg *Config) { got = append(got, cfg) })

	writeConfigFile(t, "[dock]\ndrag_threshold = 16.0\ncollapsed_size = 32.0\n")
	require.NoError(t, m.Reload())

	require.Len(t, got, 1)
	assert.Equal(t, 16.0, got[0].Dock.DragThreshold)
	assert.Equal(t, 32.0, got[0].Dock.CollapsedSize)
	assert.Equal(t, 16.0, m.Get().Dock.DragThreshold)
}

func TestReloadKeepsConfigOnInvalidFile(t *testing.T) {
	setupTestEnv(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	fired := 0
	m.OnConfigChange(func(*Config) { fired++ })

	writeConfigFile(t, "[dock]\nmin_split_ratio = 0.9\nmax_split_ratio = 0.1\n")
	require.Error(t, m.Reload())

	assert.Equal(t, 0, fired, "a failed reload must not notify callbacks")
	assert.Equal(t, 8.0, m.Get().Dock.DragThreshold, "a failed reload must keep the previous config")
}

func TestWatchIsIdempotent(t *testing.T) {
	setupTestEnv(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	require.NoError(t, m.Watch())
	require.NoError(t, m.Watch())
}
