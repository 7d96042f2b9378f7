package export

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/endfx/compress"
	"github.com/arloliu/endfx/errs"
	"github.com/arloliu/endfx/format"
	"github.com/arloliu/endfx/material"
	"github.com/arloliu/endfx/spectrum"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Artifact describes one file written by the export layer.
type Artifact struct {
	Path   string
	Format format.ExportFormat
	Stats  compress.Stats
}

// ArtifactPath returns path with the compression extension appended, unless path
// already ends with it.
func ArtifactPath(path string, ct format.CompressionType) string {
	ext := ct.Extension()
	if ext == "" || strings.HasSuffix(strings.ToLower(path), ext) {
		return path
	}

	return path + ext
}

// WriteFile compresses payload with ct and writes it atomically to
// ArtifactPath(path, ct), creating parent directories as needed.
func WriteFile(path string, payload []byte, ct format.CompressionType) (string, compress.Stats, error) {
	codec, err := compress.CreateCodec(ct)
	if err != nil {
		return "", compress.Stats{}, err
	}

	packed, stats, err := compress.CompressWithStats(codec, payload)
	if err != nil {
		return "", compress.Stats{}, err
	}

	dest := ArtifactPath(path, ct)
	if err := writeAtomic(dest, packed); err != nil {
		return "", compress.Stats{}, err
	}

	return dest, stats, nil
}

// ReadFile reads an artifact, decompressing it according to its extension.
//
// Returns an error matching errs.ErrFileNotFound if path does not exist.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrFileNotFound, path)
		}

		return nil, err
	}

	codec, err := compress.CreateCodec(format.CompressionFromPath(path))
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data)
}

// SaveJSON writes the JSON encoding of m to path.
func SaveJSON(path string, m *material.Material, ct format.CompressionType) (Artifact, error) {
	payload, err := EncodeJSON(m)
	if err != nil {
		return Artifact{}, err
	}

	dest, stats, err := WriteFile(path, payload, ct)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{Path: dest, Format: format.FormatJSON, Stats: stats}, nil
}

// LoadJSON reads a reaction table document written by SaveJSON.
func LoadJSON(path string) (*material.Material, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ReadJSON(bytes.NewReader(data))
}

// SaveCSV writes s as CSV to path.
func SaveCSV(path string, s spectrum.Spectrum, ct format.CompressionType) (Artifact, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, s); err != nil {
		return Artifact{}, err
	}

	dest, stats, err := WriteFile(path, buf.Bytes(), ct)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{Path: dest, Format: format.FormatCSV, Stats: stats}, nil
}

// LoadCSV reads a spectrum written by SaveCSV.
func LoadCSV(path string) (spectrum.Spectrum, error) {
	data, err := ReadFile(path)
	if err != nil {
		return spectrum.Spectrum{}, err
	}

	return ReadCSV(bytes.NewReader(data))
}

// writeAtomic writes data to a temporary file beside dest and renames it into place,
// so readers never observe a partially written artifact.
func writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return nil
}
