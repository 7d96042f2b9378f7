package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/endfx/errs"
	"github.com/arloliu/endfx/spectrum"
)

// CSVHeader is the first line of every spectrum CSV.
const CSVHeader = "energy,cross_section"

// WriteCSV writes s as "energy,cross_section" rows in grid order.
func WriteCSV(w io.Writer, s spectrum.Spectrum) error {
	if len(s.Energy) != len(s.CrossSection) {
		return fmt.Errorf("spectrum has %d energies but %d cross-sections", len(s.Energy), len(s.CrossSection))
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(CSVHeader)
	bw.WriteByte('\n')

	row := make([]byte, 0, 64)
	for i, e := range s.Energy {
		row = appendFloat(row[:0], e)
		row = append(row, ',')
		row = appendFloat(row, s.CrossSection[i])
		row = append(row, '\n')
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadCSV loads a spectrum written by WriteCSV.
//
// The header must be "energy,cross_section" and energies must be strictly
// increasing. Returns an error matching errs.ErrInvalidCSV otherwise.
func ReadCSV(r io.Reader) (spectrum.Spectrum, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return spectrum.Spectrum{}, fmt.Errorf("%w: missing header", errs.ErrInvalidCSV)
		}

		return spectrum.Spectrum{}, fmt.Errorf("%w: %w", errs.ErrInvalidCSV, err)
	}
	if strings.TrimSpace(header[0]) != "energy" || strings.TrimSpace(header[1]) != "cross_section" {
		return spectrum.Spectrum{}, fmt.Errorf("%w: unexpected header %q", errs.ErrInvalidCSV, strings.Join(header, ","))
	}

	var s spectrum.Spectrum
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return spectrum.Spectrum{}, fmt.Errorf("%w: %w", errs.ErrInvalidCSV, err)
		}

		line, _ := cr.FieldPos(0)
		e, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return spectrum.Spectrum{}, fmt.Errorf("%w: line %d: energy: %w", errs.ErrInvalidCSV, line, err)
		}
		xs, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return spectrum.Spectrum{}, fmt.Errorf("%w: line %d: cross_section: %w", errs.ErrInvalidCSV, line, err)
		}
		if n := len(s.Energy); n > 0 && !(e > s.Energy[n-1]) {
			return spectrum.Spectrum{}, fmt.Errorf("%w: line %d: energy %v not above %v", errs.ErrInvalidCSV, line, e, s.Energy[n-1])
		}

		s.Energy = append(s.Energy, e)
		s.CrossSection = append(s.CrossSection, xs)
	}

	return s, nil
}
