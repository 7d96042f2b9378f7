package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/endfx/errs"
	"github.com/arloliu/endfx/format"
	"github.com/arloliu/endfx/spectrum"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "endfx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "materials", cfg.Output.Root)
	require.Equal(t, 4, cfg.Batch.Workers)

	ct, err := cfg.CompressionType()
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, ct)

	channels, err := cfg.ChannelSet()
	require.NoError(t, err)
	require.Equal(t, spectrum.DefaultChannels(), channels)

	d, err := cfg.DebounceDuration()
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, d)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
output:
  root: /data/xs
  compression: zstd
  json: true
channels:
  - name: elastic
    reactions: "2"
  - name: capture
    reactions: "102"
  - name: charged
    reactions: "103-107,111"
batch:
  workers: 8
  patterns: ["*.endf6"]
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "/data/xs", cfg.Output.Root)
	require.True(t, cfg.Output.JSON)
	require.Equal(t, 8, cfg.Batch.Workers)
	require.Equal(t, []string{"*.endf6"}, cfg.Batch.Patterns)
	// unset keys keep their defaults
	require.Equal(t, "250ms", cfg.Batch.Debounce)

	ct, err := cfg.CompressionType()
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, ct)

	channels, err := cfg.ChannelSet()
	require.NoError(t, err)
	require.Equal(t, []spectrum.Channel{
		{Name: "elastic", ReactionIDs: []int{2}},
		{Name: "capture", ReactionIDs: []int{102}},
		{Name: "charged", ReactionIDs: []int{103, 104, 105, 106, 107, 111}},
	}, channels)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, lvl)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ENDFX_OUTPUT", "/tmp/out")
	t.Setenv("ENDFX_COMPRESSION", "s2")
	t.Setenv("ENDFX_WORKERS", "2")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/tmp/out", cfg.Output.Root)
	require.Equal(t, "s2", cfg.Output.Compression)
	require.Equal(t, 2, cfg.Batch.Workers)

	t.Setenv("ENDFX_WORKERS", "many")
	_, err = Load("")
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, errs.ErrFileNotFound)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":            "output: [",
		"empty root":        "output: {root: \"\"}",
		"compression":       "output: {compression: brotli}",
		"no channels":       "channels: []",
		"bad reactions":     "channels: [{name: a, reactions: \"9-1\"}]",
		"unnamed channel":   "channels: [{name: \"\", reactions: \"2\"}]",
		"path in name":      "channels: [{name: a/b, reactions: \"2\"}]",
		"duplicate channel": "channels: [{name: a, reactions: \"2\"}, {name: a, reactions: \"3\"}]",
		"workers":           "batch: {workers: 0}",
		"patterns":          "batch: {patterns: []}",
		"bad pattern":       "batch: {patterns: [\"[\"]}",
		"debounce":          "batch: {debounce: soon}",
		"level":             "logging: {level: loud}",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.ErrorIs(t, err, errs.ErrInvalidConfig)
		})
	}
}

func TestLoad_UnknownCompression(t *testing.T) {
	_, err := Load(writeConfig(t, "output: {compression: brotli}"))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestSave_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Compression = "lz4"
	cfg.Channels = append(cfg.Channels, ChannelConfig{Name: "fission", Reactions: "18-21,38"})

	path := filepath.Join(t.TempDir(), "conf", "endfx.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
