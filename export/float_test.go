package export

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{100, "100.0"},
		{-2.5, "-2.5"},
		{0.0253, "0.0253"},
		{0.0001, "0.0001"},
		{1e-05, "1e-05"},
		{1.06e-3, "0.00106"},
		{20.43634, "20.43634"},
		{2e7, "20000000.0"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{6.02214e23, "6.02214e+23"},
		{-3.2e-120, "-3.2e-120"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, formatFloat(tt.in))
		})
	}
}

func TestFormatFloat_RoundTrip(t *testing.T) {
	values := []float64{
		math.SmallestNonzeroFloat64, math.MaxFloat64, 1.0 / 3.0, 2.0 / 3.0 * 1e-7,
		0.1 + 0.2, 123456789.123456789, 9.999999999999999e15, 1.7976931348623157e308,
	}

	for _, v := range values {
		got, err := strconv.ParseFloat(formatFloat(v), 64)
		require.NoError(t, err)
		require.Equal(t, math.Float64bits(v), math.Float64bits(got), "value %v", v)
	}
}

func TestAppendFloat_ReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, 32)
	buf = appendFloat(buf, 1)
	buf = append(buf, ',')
	buf = appendFloat(buf, 2.5e-9)
	require.Equal(t, "1.0,2.5e-09", string(buf))
}
