// Package compress provides the codecs used to shrink exported cross-section artifacts.
//
// Reaction table JSON documents for heavy isotopes run to tens of megabytes, most of
// it repeated digits, so the export layer can pass every payload through one of the
// codecs here before writing it to disk. The codec is chosen by format.CompressionType
// and recorded in the artifact's file extension (.zst, .s2, .lz4), which is how
// readers pick the matching decompressor.
//
// # Supported Algorithms
//
//   - None: payload written as-is
//   - Zstd: best ratio, the default for archived bundles
//   - S2: fast Snappy-compatible compression
//   - LZ4: fastest decompression, block format
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// All codecs are stateless values and safe for concurrent use; the Zstd codec keeps
// warmed-up encoders and decoders in sync.Pools.
package compress
