package compress

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/endfx/errs"
	"github.com/arloliu/endfx/format"
)

// tablePayload produces JSON-like text resembling an exported reaction table.
func tablePayload(points int) []byte {
	var sb strings.Builder
	sb.WriteString(`{"102": {"energy": [`)
	for i := range points {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g", 1e-5*float64(i+1))
	}
	sb.WriteString("]}}")

	return []byte(sb.String())
}

func allCodecs() []format.CompressionType {
	return []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range allCodecs() {
		codec, err := CreateCodec(ct)
		require.NoError(t, err)
		require.Equal(t, ct, codec.Type())
	}

	_, err := CreateCodec(format.CompressionType(0xFF))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestCodec_RoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(42)) //nolint:gosec
	random := make([]byte, 4096)
	rnd.Read(random)

	payloads := map[string][]byte{
		"table":  tablePayload(2000),
		"small":  []byte("energy,cross_section\n1,2\n"),
		"random": random,
		"single": {0x7},
	}

	for _, ct := range allCodecs() {
		codec, err := CreateCodec(ct)
		require.NoError(t, err)

		for name, payload := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				packed, err := codec.Compress(payload)
				require.NoError(t, err)

				restored, err := codec.Decompress(packed)
				require.NoError(t, err)
				require.True(t, bytes.Equal(payload, restored), "payload mismatch")
			})
		}
	}
}

func TestCodec_Empty(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionS2, format.CompressionLZ4} {
		codec, err := CreateCodec(ct)
		require.NoError(t, err)

		packed, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Nil(t, packed)

		restored, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Nil(t, restored)
	}

	restored, err := NewZstdCompressor().Decompress(nil)
	require.NoError(t, err)
	require.Nil(t, restored)
}

func TestCodec_CorruptedInput(t *testing.T) {
	garbage := []byte("definitely not a compressed payload")

	_, err := NewZstdCompressor().Decompress(garbage)
	require.Error(t, err)

	_, err = NewS2Compressor().Decompress(garbage)
	require.Error(t, err)

	_, err = NewLZ4Compressor().Decompress([]byte{0x1, 0x2})
	require.Error(t, err)
}

func TestCompressWithStats(t *testing.T) {
	payload := tablePayload(5000)

	packed, stats, err := CompressWithStats(NewZstdCompressor(), payload)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, stats.Algorithm)
	require.Equal(t, int64(len(payload)), stats.OriginalSize)
	require.Equal(t, int64(len(packed)), stats.CompressedSize)
	require.Less(t, stats.Ratio(), 1.0)
	require.Greater(t, stats.SpaceSavings(), 0.0)

	require.Zero(t, Stats{}.Ratio())
	require.Zero(t, Stats{}.SpaceSavings())
}

func TestZstd_ConcurrentUse(t *testing.T) {
	codec := NewZstdCompressor()
	payload := tablePayload(1000)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				packed, err := codec.Compress(payload)
				if !assertNoErr(t, err) {
					return
				}
				restored, err := codec.Decompress(packed)
				if !assertNoErr(t, err) {
					return
				}
				if !bytes.Equal(payload, restored) {
					t.Errorf("payload mismatch")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func assertNoErr(t *testing.T, err error) bool {
	t.Helper()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
		return false
	}

	return true
}

func BenchmarkCodec_Compress(b *testing.B) {
	payload := tablePayload(10000)
	for _, ct := range allCodecs() {
		codec, _ := CreateCodec(ct)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = codec.Compress(payload)
			}
		})
	}
}
