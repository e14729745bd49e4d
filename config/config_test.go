package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/timegrid/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timegrid.yaml")
	dat := []byte(`
log_level: debug
tempo:
  bpm: 90
  time_signature:
    numerator: 6
    denominator: 8
debounce: 40ms
`)
	require.NoError(t, os.WriteFile(path, dat, 0o644))
	t.Setenv("TIMEGRID_ADDR", ":9999")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("debug", cfg.LogLevel)
	assert.Equal(":9999", cfg.Addr)
	assert.Equal(90.0, cfg.Tempo.BPM)
	assert.Equal(model.TimeSignature{Numerator: 6, Denominator: 8}, cfg.Tempo.TimeSignature)
	assert.Equal(40*time.Millisecond, cfg.Debounce)
	assert.Equal(16, cfg.Measures)
}

func TestLoadRejectsBadTempo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timegrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tempo:\n  bpm: 0\n"), 0o644))

	_, err := Load(path)
	assert.True(t, model.IsInvalidParameter(err))
}
