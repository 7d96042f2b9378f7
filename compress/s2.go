package compress

import (
	"github.com/klauspost/compress/s2"

	"github.com/arloliu/endfx/format"
)

// S2Compressor provides S2 (Snappy-compatible) block compression.
//
// S2 trades some ratio for speed and is a good fit for the batch exporter when many
// materials are converted at once.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

func (c S2Compressor) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress compresses the input data using S2 block encoding.
// Returns nil for empty input.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
