package export

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/endfx/errs"
	"github.com/arloliu/endfx/format"
	"github.com/arloliu/endfx/spectrum"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func TestArtifactPath(t *testing.T) {
	require.Equal(t, "a/h-1.json", ArtifactPath("a/h-1.json", format.CompressionNone))
	require.Equal(t, "a/h-1.json.zst", ArtifactPath("a/h-1.json", format.CompressionZstd))
	require.Equal(t, "a/h-1.json.zst", ArtifactPath("a/h-1.json.zst", format.CompressionZstd))
	require.Equal(t, "a/h-1.csv.lz4", ArtifactPath("a/h-1.csv", format.CompressionLZ4))
}

func TestSaveLoadJSON(t *testing.T) {
	src := sampleMaterial(t)

	for _, ct := range allCompressions {
		t.Run(ct.String(), func(t *testing.T) {
			dir := t.TempDir()

			a, err := SaveJSON(filepath.Join(dir, "nested", "h-1.json"), src, ct)
			require.NoError(t, err)
			require.Equal(t, format.FormatJSON, a.Format)
			require.Equal(t, ct, a.Stats.Algorithm)
			require.Equal(t, filepath.Join(dir, "nested", "h-1.json"+ct.Extension()), a.Path)

			info, err := os.Stat(a.Path)
			require.NoError(t, err)
			require.Equal(t, a.Stats.CompressedSize, info.Size())

			got, err := LoadJSON(a.Path)
			require.NoError(t, err)
			require.Equal(t, src.Fingerprint(), got.WithName(src.Name()).Fingerprint())
		})
	}
}

func TestSaveLoadCSV(t *testing.T) {
	s := spectrum.Spectrum{Energy: []float64{1, 2, 3}, CrossSection: []float64{0.5, 0.25, 0.125}}

	for _, ct := range allCompressions {
		t.Run(ct.String(), func(t *testing.T) {
			a, err := SaveCSV(filepath.Join(t.TempDir(), "h-1_aggregated_scattering.csv"), s, ct)
			require.NoError(t, err)
			require.Equal(t, format.FormatCSV, a.Format)

			got, err := LoadCSV(a.Path)
			require.NoError(t, err)
			require.Equal(t, s, got)
		})
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	_, _, err := WriteFile(path, []byte("first version, longer than the second\n"), format.CompressionNone)
	require.NoError(t, err)
	_, _, err = WriteFile(path, []byte("second\n"), format.CompressionNone)
	require.NoError(t, err)

	data, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteFile_UnknownCompression(t *testing.T) {
	_, _, err := WriteFile(filepath.Join(t.TempDir(), "x"), []byte("x"), format.CompressionType(99))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, errs.ErrFileNotFound)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, errs.ErrFileNotFound)
	require.NotErrorIs(t, err, fs.ErrPermission)
}

func TestReadFile_CorruptCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h-1.json.zst")
	require.NoError(t, os.WriteFile(path, []byte("definitely not zstd"), 0o600))

	_, err := LoadJSON(path)
	require.Error(t, err)
}
