package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/endfx"
	"github.com/arloliu/endfx/batch"
)

func newMaterialCmd(a *app) *cobra.Command {
	var name string
	var writeJSON bool

	cmd := &cobra.Command{
		Use:   "material FILE...",
		Short: "Write the scattering and absorption bundle of each file",
		Long: `For every FILE, writes <out>/<name>/<name>_aggregated_<channel>.csv for each
configured channel (scattering and absorption by default) and, with --json, the full
reaction table document <name>.json.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name != "" && len(args) > 1 {
				return fmt.Errorf("--name applies to a single file, got %d", len(args))
			}
			opts, err := a.exportOptions(cmd, writeJSON)
			if err != nil {
				return err
			}
			if name != "" {
				opts = append(opts, endfx.WithName(name))
			}

			root := a.outputRoot(cmd)
			for _, path := range args {
				report, err := endfx.ProcessFile(cmd.Context(), path, root, opts...)
				if err != nil {
					return err
				}
				for _, artifact := range report.Artifacts {
					fmt.Fprintln(cmd.OutOrStdout(), artifact.Path)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "Output root directory (default from config)")
	cmd.Flags().String("compression", "none", "Artifact compression: none, zstd, s2, lz4")
	cmd.Flags().StringVar(&name, "name", "", "Material name to use instead of the header name")
	cmd.Flags().BoolVar(&writeJSON, "json", false, "Also write the reaction table JSON")

	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch DIR",
		Short: "Convert every ENDF-6 file of a directory",
		Long: `Converts every file of DIR matching the configured patterns (*.endf and *.txt
by default) with a pool of workers. Materials unchanged since the last run are
skipped unless --force is given. A failing file does not stop the others; the
command exits non-zero if any file failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.processor(cmd)
			if err != nil {
				return err
			}

			summary, err := p.RunDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			exported, skipped, failed := summary.Count()
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d exported, %d skipped, %d failed\n",
				summary.RunID, exported, skipped, failed)

			return summary.Err()
		},
	}
	addProcessorFlags(cmd)

	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Convert ENDF-6 files as they appear in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.processor(cmd)
			if err != nil {
				return err
			}

			return p.Watch(cmd.Context(), args[0])
		},
	}
	addProcessorFlags(cmd)

	return cmd
}

func addProcessorFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "Output root directory (default from config)")
	cmd.Flags().String("compression", "none", "Artifact compression: none, zstd, s2, lz4")
	cmd.Flags().Int("workers", 0, "Concurrent files (default from config)")
	cmd.Flags().Bool("json", false, "Also write the reaction table JSON")
	cmd.Flags().Bool("force", false, "Re-export materials even if unchanged")
}

func (a *app) exportOptions(cmd *cobra.Command, writeJSON bool) ([]endfx.Option, error) {
	ct, err := a.compression(cmd)
	if err != nil {
		return nil, err
	}
	channels, err := a.cfg.ChannelSet()
	if err != nil {
		return nil, err
	}

	return []endfx.Option{
		endfx.WithLogger(a.logger),
		endfx.WithChannels(channels...),
		endfx.WithCompression(ct),
		endfx.WithJSON(writeJSON || a.cfg.Output.JSON),
	}, nil
}

func (a *app) processor(cmd *cobra.Command) (*batch.Processor, error) {
	ct, err := a.compression(cmd)
	if err != nil {
		return nil, err
	}
	channels, err := a.cfg.ChannelSet()
	if err != nil {
		return nil, err
	}
	debounce, err := a.cfg.DebounceDuration()
	if err != nil {
		return nil, err
	}

	workers := a.cfg.Batch.Workers
	if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
		workers = n
	}
	writeJSON, _ := cmd.Flags().GetBool("json")
	force, _ := cmd.Flags().GetBool("force")

	return batch.New(a.outputRoot(cmd),
		batch.WithLogger(a.logger),
		batch.WithWorkers(workers),
		batch.WithPatterns(a.cfg.Batch.Patterns...),
		batch.WithChannels(channels...),
		batch.WithCompression(ct),
		batch.WithJSON(writeJSON || a.cfg.Output.JSON),
		batch.WithForce(force || a.cfg.Batch.Force),
		batch.WithDebounce(debounce),
	)
}
