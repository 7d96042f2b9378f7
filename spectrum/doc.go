// Package spectrum merges reaction tables onto a common energy grid.
//
// Aggregate selects a subset of a material's reactions, builds the sorted union of
// their energies and sums each table's piecewise-linear interpolant over that grid.
// Outside a table's own energy range its contribution is zero; no extrapolation is
// performed. At a tabulated energy the table's exact value is used.
//
// Every function here is pure and works on in-memory slices, so aggregations over
// the same immutable material may run concurrently. AggregateChannels does exactly
// that for a list of named reaction sets such as Scattering and Absorption.
package spectrum
