package batch

import (
	"errors"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/arloliu/endfx"
	"github.com/arloliu/endfx/format"
	"github.com/arloliu/endfx/internal/options"
	"github.com/arloliu/endfx/spectrum"
)

// DefaultPatterns are the file name patterns processed when none are configured.
var DefaultPatterns = []string{"*.endf", "*.txt"}

const defaultDebounce = 250 * time.Millisecond

type config struct {
	logger      *zap.Logger
	workers     int
	patterns    []string
	channels    []spectrum.Channel
	compression format.CompressionType
	json        bool
	force       bool
	debounce    time.Duration
	onResult    func(Result)
}

// Option configures a Processor.
type Option = options.Option[*config]

// WithLogger sets the logger for progress and per-file failures.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}

// WithWorkers bounds how many files are processed at once. Values <= 0 select
// one worker.
func WithWorkers(n int) Option {
	return options.NoError(func(cfg *config) {
		cfg.workers = max(n, 1)
	})
}

// WithPatterns sets the file name glob patterns used to discover input files.
func WithPatterns(patterns ...string) Option {
	return options.New(func(cfg *config) error {
		if len(patterns) == 0 {
			return errors.New("batch: at least one file pattern is required")
		}
		for _, p := range patterns {
			if _, err := filepath.Match(p, ""); err != nil {
				return err
			}
		}
		cfg.patterns = slices.Clone(patterns)

		return nil
	})
}

// WithChannels replaces the default scattering and absorption channels.
func WithChannels(channels ...spectrum.Channel) Option {
	return options.NoError(func(cfg *config) {
		cfg.channels = slices.Clone(channels)
	})
}

// WithCompression compresses every written artifact.
func WithCompression(ct format.CompressionType) Option {
	return options.NoError(func(cfg *config) {
		cfg.compression = ct
	})
}

// WithJSON also writes the reaction table document of every material.
func WithJSON(enabled bool) Option {
	return options.NoError(func(cfg *config) {
		cfg.json = enabled
	})
}

// WithForce disables manifest-based skipping of unchanged materials.
func WithForce(force bool) Option {
	return options.NoError(func(cfg *config) {
		cfg.force = force
	})
}

// WithDebounce sets how long Watch waits after the last event on a file before
// converting it.
func WithDebounce(d time.Duration) Option {
	return options.NoError(func(cfg *config) {
		if d > 0 {
			cfg.debounce = d
		}
	})
}

// WithResultHook registers fn to be called with every Result as it completes.
// fn may be called from several goroutines at once.
func WithResultHook(fn func(Result)) Option {
	return options.NoError(func(cfg *config) {
		cfg.onResult = fn
	})
}

func (cfg *config) exportOptions() []endfx.Option {
	opts := []endfx.Option{
		endfx.WithLogger(cfg.logger),
		endfx.WithCompression(cfg.compression),
		endfx.WithJSON(cfg.json),
	}
	if len(cfg.channels) > 0 {
		opts = append(opts, endfx.WithChannels(cfg.channels...))
	}

	return opts
}
