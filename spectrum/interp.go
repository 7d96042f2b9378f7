package spectrum

import (
	"math"
	"sort"
)

// Interpolate evaluates the piecewise-linear function through (xp, fp) at every x.
//
// xp must be non-decreasing and the same length as fp. Points below xp[0] evaluate to
// left and points above xp[len-1] to right. Where xp repeats a value (a
// discontinuity), the rightmost sample wins. An empty xp yields left everywhere and
// a NaN x yields NaN.
//
// Parameters:
//   - x: The points to evaluate
//   - xp: The sample abscissae, non-decreasing
//   - fp: The sample values, one per xp
//   - left: The value returned for points below xp[0]
//   - right: The value returned for points above the last xp
//
// Returns:
//   - []float64: One value per element of x.
func Interpolate(x, xp, fp []float64, left, right float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = evaluate(v, xp, fp, left, right)
	}

	return out
}

func evaluate(x float64, xp, fp []float64, left, right float64) float64 {
	n := len(xp)
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case n == 0 || x < xp[0]:
		return left
	case x > xp[n-1]:
		return right
	case x == xp[n-1]:
		return fp[n-1]
	}

	// largest j with xp[j] <= x; j < n-1 here
	j := sort.Search(n, func(i int) bool { return xp[i] > x }) - 1

	return lerp(x, xp[j], xp[j+1], fp[j], fp[j+1])
}

// lerp interpolates between (x0, y0) and (x1, y1) with x0 <= x < x1.
func lerp(x, x0, x1, y0, y1 float64) float64 {
	if x == x0 {
		return y0
	}
	slope := (y1 - y0) / (x1 - x0)

	return y0 + slope*(x-x0)
}

// accumulate adds the zero-bounded interpolant of (xp, fp) at every grid point into
// dst. grid must be sorted ascending; the walk is linear in len(grid)+len(xp).
func accumulate(dst, grid, xp, fp []float64) {
	n := len(xp)
	if n == 0 {
		return
	}

	lo := sort.SearchFloat64s(grid, xp[0])
	j := 0
	for i := lo; i < len(grid); i++ {
		x := grid[i]
		if x > xp[n-1] {
			return
		}
		if x == xp[n-1] {
			dst[i] += fp[n-1]
			continue
		}
		for j+1 < n && xp[j+1] <= x {
			j++
		}
		dst[i] += lerp(x, xp[j], xp[j+1], fp[j], fp[j+1])
	}
}
