package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/endfx/format"
	"github.com/arloliu/endfx/material"
	"github.com/arloliu/endfx/spectrum"
)

func TestChannelFileName(t *testing.T) {
	require.Equal(t, "u-235_aggregated_absorption.csv", ChannelFileName("u-235", "absorption"))
	require.Equal(t, filepath.Join("out", "u-235"), BundleDir("out", "u-235"))
}

func TestWriteBundle(t *testing.T) {
	m := sampleMaterial(t)
	results, err := spectrum.AggregateChannels(context.Background(), m, spectrum.DefaultChannels())
	require.NoError(t, err)

	root := t.TempDir()
	artifacts, err := WriteBundle(root, m, results, WithJSON(true))
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	dir := filepath.Join(root, "h-1")
	require.Equal(t, filepath.Join(dir, "h-1_aggregated_scattering.csv"), artifacts[0].Path)
	require.Equal(t, filepath.Join(dir, "h-1_aggregated_absorption.csv"), artifacts[1].Path)
	require.Equal(t, filepath.Join(dir, "h-1.json"), artifacts[2].Path)

	scattering, err := LoadCSV(artifacts[0].Path)
	require.NoError(t, err)
	require.Equal(t, []float64{1e-05, 2e7}, scattering.Energy)
	require.Equal(t, []float64{20.43634, 0.4827}, scattering.CrossSection)

	absorption, err := LoadCSV(artifacts[1].Path)
	require.NoError(t, err)
	require.Equal(t, []float64{16.72, 0.03334}, absorption.CrossSection)

	loaded, err := LoadJSON(artifacts[2].Path)
	require.NoError(t, err)
	require.Equal(t, m.ReactionIDs(), loaded.ReactionIDs())
}

func TestWriteBundle_CompressedWithoutJSON(t *testing.T) {
	m := sampleMaterial(t)
	results, err := spectrum.AggregateChannels(context.Background(), m, spectrum.DefaultChannels())
	require.NoError(t, err)

	root := t.TempDir()
	artifacts, err := WriteBundle(root, m, results, WithCompression(format.CompressionS2))
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	entries, err := os.ReadDir(filepath.Join(root, "h-1"))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.ElementsMatch(t, []string{
		"h-1_aggregated_scattering.csv.s2",
		"h-1_aggregated_absorption.csv.s2",
	}, names)
}

func TestWriteBundle_EmptyChannelWarns(t *testing.T) {
	m := sampleMaterial(t)
	results := []spectrum.ChannelSpectrum{
		{Channel: spectrum.Channel{Name: "fission", ReactionIDs: []int{18}}},
	}
	core, logs := observer.New(zapcore.WarnLevel)

	artifacts, err := WriteBundle(t.TempDir(), m, results, WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	require.Equal(t, 1, logs.FilterMessage("writing empty channel").Len())

	s, err := LoadCSV(artifacts[0].Path)
	require.NoError(t, err)
	require.True(t, s.IsEmpty())
}

func TestWriteBundle_Errors(t *testing.T) {
	unnamed, err := material.New("")
	require.NoError(t, err)

	_, err = WriteBundle(t.TempDir(), unnamed, nil)
	require.Error(t, err)

	_, err = WriteBundle(t.TempDir(), sampleMaterial(t), nil, WithCompression(format.CompressionType(42)))
	require.Error(t, err)
}
