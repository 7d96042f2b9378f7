package export

import (
	"errors"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/arloliu/endfx/compress"
	"github.com/arloliu/endfx/format"
	"github.com/arloliu/endfx/internal/options"
	"github.com/arloliu/endfx/material"
	"github.com/arloliu/endfx/spectrum"
)

type bundleConfig struct {
	compression format.CompressionType
	json        bool
	logger      *zap.Logger
}

// BundleOption configures WriteBundle.
type BundleOption = options.Option[*bundleConfig]

// WithCompression compresses every artifact of the bundle with ct.
func WithCompression(ct format.CompressionType) BundleOption {
	return options.New(func(cfg *bundleConfig) error {
		if _, err := compress.CreateCodec(ct); err != nil {
			return err
		}
		cfg.compression = ct

		return nil
	})
}

// WithJSON additionally writes the full reaction table document as <name>.json.
func WithJSON(enabled bool) BundleOption {
	return options.NoError(func(cfg *bundleConfig) {
		cfg.json = enabled
	})
}

// WithLogger sets the logger receiving one entry per written artifact.
func WithLogger(logger *zap.Logger) BundleOption {
	return options.NoError(func(cfg *bundleConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}

// ChannelFileName returns "<name>_aggregated_<channel>.csv".
func ChannelFileName(name, channel string) string {
	return name + "_aggregated_" + channel + format.FormatCSV.Extension()
}

// BundleDir returns the directory holding the bundle of material name under root.
func BundleDir(root, name string) string {
	return filepath.Join(root, name)
}

// WriteBundle writes one CSV per aggregated channel, and optionally the JSON table
// document, under root/<material name>/.
//
// Channels with an empty spectrum are still written (header only) so downstream
// loaders find every expected file; a warning is logged for them.
func WriteBundle(root string, m *material.Material, results []spectrum.ChannelSpectrum, opts ...BundleOption) ([]Artifact, error) {
	cfg := &bundleConfig{compression: format.CompressionNone, logger: zap.NewNop()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	name := m.Name()
	if name == "" {
		return nil, errors.New("export: material has no name")
	}
	dir := BundleDir(root, name)

	artifacts := make([]Artifact, 0, len(results)+1)
	for _, r := range results {
		if r.Spectrum.IsEmpty() {
			cfg.logger.Warn("writing empty channel",
				zap.String("material", name),
				zap.String("channel", r.Channel.Name))
		}

		a, err := SaveCSV(filepath.Join(dir, ChannelFileName(name, r.Channel.Name)), r.Spectrum, cfg.compression)
		if err != nil {
			return artifacts, err
		}
		cfg.logger.Debug("wrote artifact", zap.String("path", a.Path), zap.Int("points", r.Spectrum.Len()))
		artifacts = append(artifacts, a)
	}

	if cfg.json {
		a, err := SaveJSON(filepath.Join(dir, name+format.FormatJSON.Extension()), m, cfg.compression)
		if err != nil {
			return artifacts, err
		}
		cfg.logger.Debug("wrote artifact", zap.String("path", a.Path), zap.Int("reactions", m.Len()))
		artifacts = append(artifacts, a)
	}

	return artifacts, nil
}
