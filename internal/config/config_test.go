package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644), "write temp file")
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "digitfactor.yaml", "workers: 4\nmax_frontier: 123\nquiet: true\ntime_budget: 5s\nformat: json\njournal: runs.jsonl\ncache: memo\n")
	cfg, err := LoadFile(p)
	require.NoError(t, err)

	require.NotNil(t, cfg.Workers)
	assert.Equal(t, 4, *cfg.Workers)
	require.NotNil(t, cfg.MaxFrontier)
	assert.Equal(t, 123, *cfg.MaxFrontier)
	require.NotNil(t, cfg.Quiet)
	assert.True(t, *cfg.Quiet)
	require.NotNil(t, cfg.Format)
	assert.Equal(t, FormatJSON, *cfg.Format)
	require.NotNil(t, cfg.Journal)
	assert.Equal(t, "runs.jsonl", *cfg.Journal)
	require.NotNil(t, cfg.Cache)
	assert.Equal(t, "memo", *cfg.Cache)

	d, err := cfg.TimeBudgetDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "negative workers", body: "workers: -1\n"},
		{name: "negative frontier", body: "max_frontier: -3\n"},
		{name: "bad duration", body: "time_budget: soon\n"},
		{name: "negative duration", body: "time_budget: -1s\n"},
		{name: "unknown format", body: "format: xml\n"},
		{name: "not yaml", body: "workers: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeTemp(t, t.TempDir(), "digitfactor.yml", tt.body)
			_, err := LoadFile(p)
			assert.Error(t, err)
		})
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "digitfactor.yaml", "workers: 1\n")
	writeTemp(t, dir, ".digitfactor.yaml", "workers: 7\n")
	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.Workers)
	assert.Equal(t, 7, *cfg.Workers)
}

func TestLoadLocal_InvalidIsNotNotFound(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, ".digitfactor.yml", "workers: -2\n")
	_, err := LoadLocal(dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLoadLocal_NoConfig(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound, "expected error when no local config exists")
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "digitfactor")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	writeTemp(t, cfgDir, "config.yml", "max_frontier: 9\n")
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg.MaxFrontier)
	assert.Equal(t, 9, *cfg.MaxFrontier)
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	// Simulate no HOME as well by clearing HOME; LoadGlobal should error
	t.Setenv("HOME", "")
	_, err := LoadGlobal()
	assert.ErrorIs(t, err, ErrNotFound, "expected error when no global config dir exists")
}

func TestTimeBudgetDuration_Missing(t *testing.T) {
	d, err := FileConfig{}.TimeBudgetDuration()
	require.NoError(t, err)
	assert.Zero(t, d)
}
