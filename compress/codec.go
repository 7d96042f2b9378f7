package compress

import (
	"fmt"

	"github.com/arloliu/endfx/errs"
	"github.com/arloliu/endfx/format"
)

// Compressor compresses a complete artifact payload.
type Compressor interface {
	// Compress returns a newly allocated compressed copy of data.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original payload, or an error if data is corrupted
	// or was produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions together with the algorithm identifier.
type Codec interface {
	Compressor
	Decompressor
	Type() format.CompressionType
}

// Stats summarizes one compression pass; the batch manifest records it per artifact.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns compressed size / original size, or 0 for an empty input.
//
// Values below 1.0 mean the codec saved space.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage (0-100%).
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.Ratio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// CreateCodec returns the built-in codec for compressionType.
//
// Returns an error wrapping errs.ErrUnsupportedCompression for unknown types.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// CompressWithStats compresses data with codec and reports the size change.
func CompressWithStats(codec Codec, data []byte) ([]byte, Stats, error) {
	packed, err := codec.Compress(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s compression failed: %w", codec.Type(), err)
	}

	return packed, Stats{
		Algorithm:      codec.Type(),
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(packed)),
	}, nil
}
