// Package record classifies and decodes fixed-width ENDF-6 text records.
//
// Every ENDF line is 80 columns (sometimes 81 with a trailing blank) laid out as:
//
//	[0,66)   six numeric fields, 11 characters each
//	[66,70)  material code (MAT)
//	[70,72)  file number (MF)
//	[72,75)  reaction identifier (MT)
//	[75,81)  line number within the section (NS)
//
// Classify is a pure step function: it takes the parsing State accumulated so far
// and one raw line, and returns the next State together with the classified Line.
// A file is parsed by folding Classify over its lines; the material package does
// exactly that while it builds reaction tables.
//
// Numeric fields use ENDF's compact scientific notation where the exponent marker
// is omitted ("1.234560-3" is 1.23456e-3). DecodeField converts such a field into a
// float64 and FormatValue produces one.
package record
