package material

import (
	"go.uber.org/zap"

	"github.com/arloliu/endfx/internal/options"
)

type builderConfig struct {
	logger *zap.Logger
}

// BuilderOption configures a Builder.
type BuilderOption = options.Option[*builderConfig]

// WithLogger sets the logger used for diagnostics such as skipped duplicate sections
// and dropped unpaired values. A nil logger is ignored.
func WithLogger(logger *zap.Logger) BuilderOption {
	return options.NoError(func(cfg *builderConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}
