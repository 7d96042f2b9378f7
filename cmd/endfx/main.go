// Command endfx converts ENDF-6 evaluated nuclear data into the reaction table and
// aggregated cross-section files consumed by the transport simulation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/endfx/format"
	"github.com/arloliu/endfx/internal/config"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "endfx",
		Short: "ENDF-6 cross-section parser and aggregator",
		Long: `endfx reads ENDF-6 evaluated nuclear data files, extracts the MF=3
cross-section tables per reaction (MT) and writes them as JSON, or aggregates
reaction sets such as scattering (MT=2) and absorption (MT=102-117) onto a common
energy grid as CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")

	root.AddCommand(
		newParseCmd(a),
		newAggregateCmd(a),
		newInfoCmd(a),
		newMaterialCmd(a),
		newBatchCmd(a),
		newWatchCmd(a),
	)

	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger != nil {
		return nil
	}

	level, _ := cfg.LogLevel()
	if a.verbose {
		level = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	return nil
}

// compression returns the --compression flag when set, the configured value otherwise.
func (a *app) compression(cmd *cobra.Command) (format.CompressionType, error) {
	if f := cmd.Flags().Lookup("compression"); f != nil && f.Changed {
		return format.ParseCompressionType(f.Value.String())
	}

	return a.cfg.CompressionType()
}

// outputRoot returns the --out flag when set, the configured root otherwise.
func (a *app) outputRoot(cmd *cobra.Command) string {
	if f := cmd.Flags().Lookup("out"); f != nil && f.Changed {
		return f.Value.String()
	}

	return a.cfg.Output.Root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "endfx:", err)
		stop()
		os.Exit(1)
	}
}
