package spectrum

import (
	"context"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/endfx/internal/options"
	"github.com/arloliu/endfx/material"
)

// Channel is a named set of reactions aggregated into one curve.
type Channel struct {
	Name        string
	ReactionIDs []int
}

// Built-in channels used when preparing materials for the transport simulation.
var (
	// Scattering is elastic scattering (MT=2).
	Scattering = Channel{Name: "scattering", ReactionIDs: []int{2}}
	// Absorption covers the neutron-disappearance reactions MT=102 through MT=117.
	Absorption = Channel{Name: "absorption", ReactionIDs: Range(102, 117)}
)

// DefaultChannels returns copies of Scattering and Absorption.
func DefaultChannels() []Channel {
	return []Channel{
		{Name: Scattering.Name, ReactionIDs: slices.Clone(Scattering.ReactionIDs)},
		{Name: Absorption.Name, ReactionIDs: slices.Clone(Absorption.ReactionIDs)},
	}
}

// Range returns the inclusive sequence first..last.
func Range(first, last int) []int {
	if last < first {
		return nil
	}
	ids := make([]int, 0, last-first+1)
	for id := first; id <= last; id++ {
		ids = append(ids, id)
	}

	return ids
}

// ChannelSpectrum pairs a channel with its aggregated curve.
type ChannelSpectrum struct {
	Channel  Channel
	Spectrum Spectrum
}

type channelConfig struct {
	logger  *zap.Logger
	workers int
}

// ChannelOption configures AggregateChannels.
type ChannelOption = options.Option[*channelConfig]

// WithChannelLogger sets the logger that receives empty-aggregation warnings.
func WithChannelLogger(logger *zap.Logger) ChannelOption {
	return options.NoError(func(cfg *channelConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}

// WithChannelWorkers bounds how many channels are aggregated at once.
// Values <= 0 mean one goroutine per channel.
func WithChannelWorkers(n int) ChannelOption {
	return options.NoError(func(cfg *channelConfig) {
		cfg.workers = n
	})
}

// AggregateChannels aggregates every channel of m concurrently.
//
// Results are returned in channel order. A channel matching no reaction yields an
// empty spectrum and a warning on the configured logger. The only error returned is
// the context's, when it is cancelled before all channels finish.
func AggregateChannels(ctx context.Context, m *material.Material, channels []Channel, opts ...ChannelOption) ([]ChannelSpectrum, error) {
	cfg := &channelConfig{logger: zap.NewNop()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	results := make([]ChannelSpectrum, len(channels))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.workers > 0 {
		g.SetLimit(cfg.workers)
	}

	for i, ch := range channels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			s := Aggregate(m, ch.ReactionIDs)
			if s.IsEmpty() {
				cfg.logger.Warn("empty aggregation",
					zap.String("material", m.Name()),
					zap.String("channel", ch.Name),
					zap.Ints("reaction_ids", ch.ReactionIDs))
			}
			results[i] = ChannelSpectrum{Channel: ch, Spectrum: s}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
