package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernlang/fern/internal/config"
)

func write(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := write(t, "config.yaml", `
encoding: iso-8859-7
ignore:
  - vendor/**
  - "**/*_gen.fern"
jobs: 4
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "iso-8859-7", cfg.Encoding)
	assert.Equal(t, []string{"vendor/**", "**/*_gen.fern"}, cfg.Ignore)
	assert.Equal(t, 4, cfg.Jobs)
}

func TestLoadMissing(t *testing.T) {
	// An explicit path must exist.
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	// The implicit default file is allowed to be absent.
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Zero(t, cfg)
}

func TestLoadDefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, config.DefaultFile), []byte("jobs: 2\n"), 0o600))
	t.Chdir(dir)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Jobs)
}

func TestLoadInvalid(t *testing.T) {
	_, err := config.Load(write(t, "bad.yaml", "jobs: [not an int\n"))
	assert.ErrorContains(t, err, "parse config")

	_, err = config.Load(write(t, "badglob.yaml", "ignore: ['[']\n"))
	assert.ErrorContains(t, err, "invalid ignore glob")
}

func TestIgnored(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Ignore: []string{"vendor/**", "*.tmp"}}
	assert.True(t, cfg.Ignored("vendor/lib/a.fern"))
	assert.True(t, cfg.Ignored("scratch.tmp"))
	assert.False(t, cfg.Ignored("src/a.fern"))
	assert.False(t, config.Config{}.Ignored("anything"))
}
