// Package export serializes reaction tables and aggregated spectra.
//
// Two wire formats are produced:
//
//   - JSON: an object keyed by reaction id (as a string) whose values are
//     {"energy": [...], "cross_section": [...]}. Keys keep the material's first-seen
//     order and floats use the shortest representation that round-trips exactly.
//   - CSV: a header line "energy,cross_section" followed by one row per grid point
//     in ascending energy order.
//
// Both have readers (ReadJSON, ReadCSV) so exported artifacts can be loaded back
// without loss. File helpers write atomically (temporary file plus rename in the
// destination directory) and optionally compress the payload; the codec is recorded
// in the file extension and detected again on load.
//
// WriteBundle lays out a material the way the transport simulation expects it:
//
//	<root>/<name>/<name>_aggregated_scattering.csv
//	<root>/<name>/<name>_aggregated_absorption.csv
package export
