package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir runs the rest of the test from dir so Load does not pick up a
// stray t8.yaml from the working tree.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost", cfg.Host)
	assert.Equal(t, "admin", cfg.User)
	assert.Equal(t, "", cfg.Passw)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.False(t, cfg.Insecure)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("T8_HOST", "http://lzfs45.mirror.twave.io/lzfs45")
	t.Setenv("T8_USER", "operator")
	t.Setenv("T8_PASSW", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://lzfs45.mirror.twave.io/lzfs45", cfg.Host)
	assert.Equal(t, "operator", cfg.User)
	assert.Equal(t, "hunter2", cfg.Passw)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "host: http://t8-box\nuser: viewer\ntimeout: 10s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t8.yaml"), []byte(yaml), 0644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://t8-box", cfg.Host)
	assert.Equal(t, "viewer", cfg.User)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t8.yaml"), []byte("host: http://from-file\n"), 0644))
	chdir(t, dir)
	t.Setenv("T8_HOST", "http://from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.Host)
}

func TestLoadBadTimeout(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("T8_TIMEOUT", "0")

	_, err := Load()
	assert.Error(t, err)
}
