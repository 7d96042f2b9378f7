// Package endftest generates small synthetic ENDF-6 files for tests.
package endftest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arloliu/endfx/record"
)

// Section is one MF=3 cross-section tabulation.
type Section struct {
	MT       int
	Energy   []float64
	XS       []float64
	Trailing []float64 // extra values appended after the pairs
}

// File describes a synthetic evaluation.
type File struct {
	MAT      int
	NameLine string // free text written on the sixth line (index 5)
	Sections []Section
}

// Text returns a fixed-width text record with text in the numeric columns.
func Text(text string, mat, mf, mt, ns int) string {
	if len(text) > record.FieldsEnd {
		text = text[:record.FieldsEnd]
	}
	padded := text + strings.Repeat(" ", record.FieldsEnd-len(text))
	tail := record.FormatRecord(nil, mat, mf, mt, ns)[record.FieldsEnd:]

	return padded + tail
}

// Lines renders the file as ENDF records.
func (f File) Lines() []string {
	mat := f.MAT
	if mat == 0 {
		mat = 125
	}

	lines := []string{
		Text(" synthetic evaluation tape", 1, 0, 0, 0),
		record.FormatRecord([]float64{1001, 0.9991673, 0, 0, 2, 0}, mat, 1, 451, 1),
		record.FormatRecord([]float64{0, 0, 0, 0, 0, 6}, mat, 1, 451, 2),
		record.FormatRecord([]float64{1, 2e7, 0, 0, 10, 8}, mat, 1, 451, 3),
		record.FormatRecord([]float64{0, 0, 0, 0, 12, 4}, mat, 1, 451, 4),
		Text(f.NameLine, mat, 1, 451, 5),
		Text("----ENDF/B-VIII.0    MATERIAL  125", mat, 1, 451, 6),
		record.FormatRecord(nil, mat, 1, 0, record.SentinelLineNumber),
		record.FormatRecord(nil, mat, 0, 0, 0),
	}

	for _, s := range f.Sections {
		lines = append(lines, s.lines(mat)...)
	}

	lines = append(lines,
		record.FormatRecord(nil, mat, 0, 0, 0),
		record.FormatRecord(nil, 0, 0, 0, 0),
		record.FormatRecord(nil, -1, 0, 0, 0),
	)

	return lines
}

func (s Section) lines(mat int) []string {
	out := []string{
		record.FormatRecord([]float64{1001, 0.9991673, 0, 0, 0, 0}, mat, 3, s.MT, 1),
		record.FormatRecord([]float64{0, 0, 0, 0, 1, float64(len(s.Energy))}, mat, 3, s.MT, 2),
		record.FormatRecord([]float64{float64(len(s.Energy)), 2}, mat, 3, s.MT, 3),
	}

	vals := make([]float64, 0, 2*len(s.Energy)+len(s.Trailing))
	for i := range s.Energy {
		vals = append(vals, s.Energy[i], s.XS[i])
	}
	vals = append(vals, s.Trailing...)

	ns := 4
	for start := 0; start < len(vals); start += record.FieldCount {
		end := min(start+record.FieldCount, len(vals))
		out = append(out, record.FormatRecord(vals[start:end], mat, 3, s.MT, ns))
		ns++
	}

	return append(out, record.FormatRecord(nil, mat, 3, 0, record.SentinelLineNumber))
}

// String renders the file with a trailing newline after every record.
func (f File) String() string {
	return strings.Join(f.Lines(), "\n") + "\n"
}

// Write stores the file under dir and returns its path.
func Write(tb testing.TB, dir, name string, f File) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(f.String()), 0o600); err != nil {
		tb.Fatalf("write endf fixture: %v", err)
	}

	return path
}

// Hydrogen returns a small H-1 like evaluation with elastic scattering (MT=2),
// radiative capture (MT=102) and a redundant restatement of MT=102.
func Hydrogen() File {
	return File{
		MAT:      125,
		NameLine: "  1-H -  1 LANL       EVAL-JUL16 G.M.Hale",
		Sections: []Section{
			{MT: 1, Energy: []float64{1e-5, 1, 2e7}, XS: []float64{37.16, 20.47, 0.4829}},
			{MT: 2, Energy: []float64{1e-5, 1, 2e7}, XS: []float64{20.43634, 20.43, 0.4827}},
			{MT: 102, Energy: []float64{1e-5, 1, 1e3, 2e7}, XS: []float64{16.72, 0.03334, 1.06e-3, 2.9e-5}},
			{MT: 102, Energy: []float64{5, 6}, XS: []float64{7, 8}},
		},
	}
}
