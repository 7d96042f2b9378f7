package export

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// appendFloat appends v in the shortest form that parses back to the same bits.
//
// Magnitudes in [1e-4, 1e16) are written positionally with at least one decimal
// ("100.0", "0.0253"); others use an exponent with at least two digits ("1e-05",
// "6.02214e+23"). This matches the layout of the files the simulation was built
// against.
func appendFloat(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "nan"...)
	case math.IsInf(v, 1):
		return append(dst, "inf"...)
	case math.IsInf(v, -1):
		return append(dst, "-inf"...)
	case v == 0:
		if math.Signbit(v) {
			return append(dst, "-0.0"...)
		}

		return append(dst, "0.0"...)
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.LastIndexByte(sci, 'e')+1:])

	if exp < -4 || exp >= 16 {
		return append(dst, sci...)
	}

	start := len(dst)
	dst = strconv.AppendFloat(dst, v, 'f', -1, 64)
	if bytes.IndexByte(dst[start:], '.') < 0 {
		dst = append(dst, ".0"...)
	}

	return dst
}

func formatFloat(v float64) string {
	return string(appendFloat(nil, v))
}
