package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/endfx"
	"github.com/arloliu/endfx/errs"
	"github.com/arloliu/endfx/export"
	"github.com/arloliu/endfx/material"
	"github.com/arloliu/endfx/spectrum"
)

func newParseCmd(a *app) *cobra.Command {
	var jsonOut, mt string

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse an ENDF-6 file and dump its reaction tables as JSON",
		Long: `Parses the MF=3 cross-section sections of FILE and writes the reaction
table mapping {"<MT>": {"energy": [...], "cross_section": [...]}} to --json, or to
stdout. --mt restricts the output to a reaction subset, e.g. "2,102-117".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.parse(args[0])
			if err != nil {
				return err
			}
			if mt != "" {
				ids, err := spectrum.ParseReactionIDs(mt)
				if err != nil {
					return err
				}
				m = m.Subset(ids)
			}

			if jsonOut == "" {
				return export.WriteJSON(cmd.OutOrStdout(), m)
			}

			ct, err := a.compression(cmd)
			if err != nil {
				return err
			}
			artifact, err := export.SaveJSON(jsonOut, m, ct)
			if err != nil {
				return err
			}
			a.logger.Info("reaction tables written",
				zap.String("path", artifact.Path),
				zap.Int("reactions", m.Len()),
				zap.Float64("ratio", artifact.Stats.Ratio()))

			return nil
		},
	}

	cmd.Flags().StringVar(&jsonOut, "json", "", "Write the JSON document to this path instead of stdout")
	cmd.Flags().StringVar(&mt, "mt", "", "Reaction ids to keep, e.g. 2,102-117")
	cmd.Flags().String("compression", "none", "Compression for --json: none, zstd, s2, lz4")

	return cmd
}

func newAggregateCmd(a *app) *cobra.Command {
	var mt, out string

	cmd := &cobra.Command{
		Use:   "aggregate FILE",
		Short: "Sum a reaction set onto its union energy grid and emit CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := spectrum.ParseReactionIDs(mt)
			if err != nil {
				return err
			}
			m, err := a.parse(args[0])
			if err != nil {
				return err
			}

			s := endfx.Aggregate(m, ids)
			if s.IsEmpty() {
				a.logger.Warn("empty aggregation",
					zap.String("material", m.Name()),
					zap.String("reaction_ids", spectrum.FormatReactionIDs(ids)))
			}

			if out == "" {
				return export.WriteCSV(cmd.OutOrStdout(), s)
			}

			ct, err := a.compression(cmd)
			if err != nil {
				return err
			}
			artifact, err := export.SaveCSV(out, s, ct)
			if err != nil {
				return err
			}
			a.logger.Info("spectrum written", zap.String("path", artifact.Path), zap.Int("points", s.Len()))

			return nil
		},
	}

	cmd.Flags().StringVar(&mt, "mt", "", "Reaction ids to aggregate, e.g. 102-117 (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the CSV to this path instead of stdout")
	cmd.Flags().String("compression", "none", "Compression for --out: none, zstd, s2, lz4")
	_ = cmd.MarkFlagRequired("mt")

	return cmd
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Show the material name and reaction tables of an ENDF-6 file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.parse(args[0])
			if err != nil {
				return err
			}

			return writeInfo(cmd.OutOrStdout(), m)
		},
	}
}

func writeInfo(w io.Writer, m *material.Material) error {
	name := m.Name()
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "material:    %s\n", name)
	fmt.Fprintf(w, "reactions:   %d\n", m.Len())
	fmt.Fprintf(w, "points:      %d\n", m.PointCount())
	fmt.Fprintf(w, "fingerprint: %016x\n\n", m.Fingerprint())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MT\tpoints\tE min (eV)\tE max (eV)\t")
	for id, t := range m.All() {
		lo, hi := "-", "-"
		if n := t.Len(); n > 0 {
			lo, hi = fmt.Sprintf("%g", t.Energy[0]), fmt.Sprintf("%g", t.Energy[n-1])
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t\n", id, t.Len(), lo, hi)
	}

	return tw.Flush()
}

// parse reads path, tolerating an ambiguous material name with a warning since the
// tables are still usable by these commands.
func (a *app) parse(path string) (*material.Material, error) {
	m, err := endfx.ParseFile(path, endfx.WithLogger(a.logger))
	if errors.Is(err, errs.ErrAmbiguousMaterialName) && m != nil {
		a.logger.Warn("material name not found", zap.String("file", path), zap.Error(err))
		return m, nil
	}

	return m, err
}
