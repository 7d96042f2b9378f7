package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/endfx/format"
)

// lz4SizePrefix is the length of the little-endian uncompressed-size header
// written before every LZ4 block.
const lz4SizePrefix = 4

// lz4MaxSize bounds the decompressed size accepted from a block header.
const lz4MaxSize = 1 << 30

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression.
//
// Raw LZ4 blocks do not record their decompressed size, so each payload is prefixed
// with a 4-byte little-endian length. Incompressible input is stored verbatim after
// the header, which readers detect by the block length equalling the declared size.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses the input data using LZ4 block compression.
// Returns nil for empty input.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > lz4MaxSize {
		return nil, fmt.Errorf("lz4: payload of %d bytes exceeds limit", len(data))
	}

	dst := make([]byte, lz4SizePrefix+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst, uint32(len(data))) //nolint:gosec // bounded above

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[lz4SizePrefix:])
	if err != nil {
		return nil, err
	}

	// n == 0 means the block is incompressible
	if n == 0 || n >= len(data) {
		out := make([]byte, lz4SizePrefix+len(data))
		copy(out, dst[:lz4SizePrefix])
		copy(out[lz4SizePrefix:], data)

		return out, nil
	}

	return dst[:lz4SizePrefix+n], nil
}

// Decompress restores an LZ4 payload produced by Compress.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < lz4SizePrefix {
		return nil, errors.New("lz4: payload shorter than size header")
	}

	size := int(binary.LittleEndian.Uint32(data))
	if size > lz4MaxSize {
		return nil, fmt.Errorf("lz4: declared size %d exceeds limit", size)
	}

	block := data[lz4SizePrefix:]
	if len(block) == size {
		// stored verbatim
		out := make([]byte, size)
		copy(out, block)

		return out, nil
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(block, buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("lz4: decoded %d bytes, header declared %d", n, size)
	}

	return buf, nil
}
