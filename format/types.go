// Package format defines the enumerations shared by the export and compression layers.
package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/endfx/errs"
)

type (
	CompressionType uint8
	ExportFormat    uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone writes artifacts uncompressed.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.

	FormatJSON ExportFormat = 0x1 // FormatJSON is the reaction table mapping.
	FormatCSV  ExportFormat = 0x2 // FormatCSV is the energy,cross_section delimited text.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file name suffix appended to compressed artifacts,
// including the leading dot. CompressionNone and unknown types return "".
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompressionType converts a case-insensitive name ("none", "zstd", "s2", "lz4")
// into a CompressionType. The empty string maps to CompressionNone. Unknown names
// return an error matching errs.ErrUnsupportedCompression.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedCompression, name)
	}
}

// CompressionFromPath infers the compression of an artifact from its file extension.
func CompressionFromPath(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		return CompressionZstd
	case ".s2":
		return CompressionS2
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

func (f ExportFormat) String() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatCSV:
		return "CSV"
	default:
		return "Unknown"
	}
}

// Extension returns the base file extension for the export format.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	default:
		return ""
	}
}
