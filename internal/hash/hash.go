// Package hash computes xxHash64 fingerprints of reaction tables.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hasher accumulates integers and float64 slices into a single xxHash64 digest.
//
// Floats are hashed by their IEEE-754 bit pattern, so two tables fingerprint equal
// only if every value is bit-identical. A Hasher is not safe for concurrent use.
type Hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{d: xxhash.New()}
}

// WriteInt adds v to the digest.
func (h *Hasher) WriteInt(v int) {
	h.WriteUint64(uint64(v)) //nolint:gosec // bit reinterpretation
}

// WriteUint64 adds v to the digest.
func (h *Hasher) WriteUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

// WriteString adds s, prefixed by its length, to the digest.
func (h *Hasher) WriteString(s string) {
	h.WriteInt(len(s))
	_, _ = h.d.WriteString(s)
}

// WriteFloats adds the length of vals followed by each value's bit pattern.
func (h *Hasher) WriteFloats(vals []float64) {
	h.WriteInt(len(vals))
	for _, v := range vals {
		binary.LittleEndian.PutUint64(h.buf[:], math.Float64bits(v))
		_, _ = h.d.Write(h.buf[:])
	}
}

// Sum64 returns the current digest.
func (h *Hasher) Sum64() uint64 {
	return h.d.Sum64()
}
