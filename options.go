package endfx

import (
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/arloliu/endfx/format"
	"github.com/arloliu/endfx/internal/options"
	"github.com/arloliu/endfx/spectrum"
)

var errNoChannels = errors.New("endfx: at least one channel is required")

type config struct {
	logger      *zap.Logger
	name        string
	channels    []spectrum.Channel
	compression format.CompressionType
	json        bool
	workers     int
}

// Option configures Parse, ParseFile and ProcessFile. Options that do not apply to
// an operation are ignored by it.
type Option = options.Option[*config]

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		logger:      zap.NewNop(),
		channels:    spectrum.DefaultChannels(),
		compression: format.CompressionNone,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLogger sets the logger for parse diagnostics and processing progress.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}

// WithName names the material explicitly instead of extracting the name from the
// file header.
func WithName(name string) Option {
	return options.NoError(func(cfg *config) {
		cfg.name = name
	})
}

// WithChannels replaces the default scattering and absorption channels.
func WithChannels(channels ...spectrum.Channel) Option {
	return options.New(func(cfg *config) error {
		if len(channels) == 0 {
			return errNoChannels
		}
		cfg.channels = slices.Clone(channels)

		return nil
	})
}

// WithCompression compresses written artifacts.
func WithCompression(ct format.CompressionType) Option {
	return options.NoError(func(cfg *config) {
		cfg.compression = ct
	})
}

// WithJSON also writes the full reaction table document next to the channel CSVs.
func WithJSON(enabled bool) Option {
	return options.NoError(func(cfg *config) {
		cfg.json = enabled
	})
}

// WithWorkers bounds how many channels of one material are aggregated at once.
func WithWorkers(n int) Option {
	return options.NoError(func(cfg *config) {
		cfg.workers = n
	})
}
