// Package endfx parses ENDF-6 evaluated nuclear data files into per-reaction
// cross-section tables and prepares aggregated spectra for transport simulations.
//
// An ENDF-6 file is a sequence of 80-column records. endfx reads the MF=3
// cross-section sections, keeping one energy/cross-section table per reaction id
// (MT), and extracts the normalized material name ("u-235", "am-242m") from the
// descriptive header.
//
// # Basic Usage
//
// Parsing a file and aggregating the absorption reactions:
//
//	import "github.com/arloliu/endfx"
//
//	m, err := endfx.ParseFile("n-092_U_235.endf")
//	if err != nil {
//	    return err
//	}
//
//	absorption := endfx.Aggregate(m, spectrum.Absorption.ReactionIDs)
//	for e, xs := range absorption.Points() {
//	    fmt.Printf("%g eV: %g b\n", e, xs)
//	}
//
// Preparing the scattering and absorption bundle used by the simulation:
//
//	report, _ := endfx.ProcessFile(ctx, "n-092_U_235.endf", "materials", endfx.WithJSON(true))
//	for _, a := range report.Artifacts {
//	    fmt.Println(a.Path)
//	}
//
// # Package Structure
//
// This package wraps the record, material, spectrum and export packages for the
// common cases. Use those packages directly for line-level control, custom channels
// or alternative output layouts.
package endfx

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/arloliu/endfx/errs"
	"github.com/arloliu/endfx/export"
	"github.com/arloliu/endfx/material"
	"github.com/arloliu/endfx/spectrum"
)

// maxLineLength bounds a single input line. ENDF records are 80 columns; the limit
// only guards against feeding a binary file by mistake.
const maxLineLength = 1 << 20

// Parse reads ENDF-6 text from r and returns the reaction tables of the material.
//
// The material is named from the descriptive header unless WithName is given. If
// the header yields no unambiguous name, Parse returns the unnamed material together
// with an error matching errs.ErrAmbiguousMaterialName, so callers that only need
// the tables can continue. Any other error means no material is returned.
//
// Parameters:
//   - r: The ENDF-6 text, read line by line
//   - opts: Optional configuration functions (see WithName, WithLogger)
//
// Returns:
//   - *material.Material: The reaction tables in first-seen order.
//   - error: An error if a line is malformed or the name is ambiguous.
func Parse(r io.Reader, opts ...Option) (*material.Material, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	b, err := material.NewBuilder(material.WithLogger(cfg.logger))
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 128), maxLineLength)
	for sc.Scan() {
		if err := b.Feed(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read endf input: %w", err)
	}

	lines, unpaired, duplicates := b.Lines(), b.Unpaired(), b.DuplicateLines()

	name := cfg.name
	var nameErr error
	if name == "" {
		name, nameErr = material.ExtractName(b.Header())
	}
	m := b.Finish(name)

	cfg.logger.Debug("parsed material",
		zap.String("material", m.Name()),
		zap.Int("lines", lines),
		zap.Int("reactions", m.Len()),
		zap.Int("points", m.PointCount()),
		zap.Int("unpaired", unpaired),
		zap.Int("duplicate_lines", duplicates))

	if nameErr != nil {
		return m, nameErr
	}

	return m, nil
}

// ParseFile opens path and parses it with Parse.
//
// Parameters:
//   - path: The ENDF-6 file to read
//   - opts: Optional configuration functions, as for Parse
//
// Returns:
//   - *material.Material: The parsed material.
//   - error: An error matching errs.ErrFileNotFound if path does not exist, or any Parse error.
func ParseFile(path string, opts ...Option) (*material.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrFileNotFound, path)
		}

		return nil, err
	}
	defer f.Close()

	m, err := Parse(f, opts...)
	if err != nil {
		return m, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Aggregate sums the reactions of m listed in ids onto their union energy grid.
// A selection matching nothing yields an empty spectrum.
//
// Parameters:
//   - m: The parsed material
//   - ids: The reaction ids to sum; unknown ids are ignored
//
// Returns:
//   - spectrum.Spectrum: The summed cross section on the union energy grid.
func Aggregate(m *material.Material, ids []int) spectrum.Spectrum {
	return spectrum.Aggregate(m, ids)
}

// ExtractName returns the normalized material name from the leading header lines
// of an ENDF-6 file.
func ExtractName(lines []string) (string, error) {
	return material.ExtractName(lines)
}

// Report is the outcome of ProcessFile and Export.
type Report struct {
	Material  *material.Material
	Channels  []spectrum.ChannelSpectrum
	Artifacts []export.Artifact
}

// ProcessFile parses path, aggregates the configured channels and writes the
// material bundle under root/<name>/.
//
// A material without an unambiguous name cannot be placed in the output tree and
// fails with errs.ErrAmbiguousMaterialName unless WithName is given.
//
// Parameters:
//   - ctx: Cancels the export between artifacts
//   - path: The ENDF-6 file to read
//   - root: The output directory that receives the material folder
//   - opts: Optional configuration functions (see WithChannels, WithCompression)
//
// Returns:
//   - *Report: The material, its aggregated channels and the written artifact paths.
//   - error: An error if parsing, naming or writing fails.
func ProcessFile(ctx context.Context, path, root string, opts ...Option) (*Report, error) {
	m, err := ParseFile(path, opts...)
	if err != nil {
		return nil, err
	}

	return Export(ctx, m, root, opts...)
}

// Export aggregates the configured channels of m and writes its bundle under
// root/<name>/. Channels default to spectrum.DefaultChannels.
func Export(ctx context.Context, m *material.Material, root string, opts ...Option) (*Report, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	results, err := spectrum.AggregateChannels(ctx, m, cfg.channels,
		spectrum.WithChannelLogger(cfg.logger),
		spectrum.WithChannelWorkers(cfg.workers))
	if err != nil {
		return nil, err
	}

	artifacts, err := export.WriteBundle(root, m, results,
		export.WithCompression(cfg.compression),
		export.WithJSON(cfg.json),
		export.WithLogger(cfg.logger))
	if err != nil {
		return nil, fmt.Errorf("write bundle for %s: %w", m.Name(), err)
	}

	cfg.logger.Info("material exported",
		zap.String("material", m.Name()),
		zap.Int("artifacts", len(artifacts)))

	return &Report{Material: m, Channels: results, Artifacts: artifacts}, nil
}
