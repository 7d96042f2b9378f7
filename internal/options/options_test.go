package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type parseConfig struct {
	strict  bool
	workers int
	name    string
}

func withWorkers(n int) Option[*parseConfig] {
	return New(func(c *parseConfig) error {
		if n <= 0 {
			return errors.New("workers must be positive")
		}
		c.workers = n

		return nil
	})
}

func withStrict(strict bool) Option[*parseConfig] {
	return NoError(func(c *parseConfig) {
		c.strict = strict
	})
}

func withName(name string) Option[*parseConfig] {
	return NoError(func(c *parseConfig) {
		c.name = name
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &parseConfig{}
		err := Apply(cfg, withWorkers(4), withStrict(true), withName("a"), withName("b"))
		require.NoError(t, err)
		require.Equal(t, 4, cfg.workers)
		require.True(t, cfg.strict)
		require.Equal(t, "b", cfg.name)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &parseConfig{}
		err := Apply(cfg, withName("kept"), withWorkers(0), withStrict(true))
		require.EqualError(t, err, "workers must be positive")
		require.Equal(t, "kept", cfg.name)
		require.False(t, cfg.strict)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &parseConfig{}
		err := Apply(cfg, nil, withStrict(true), nil)
		require.NoError(t, err)
		require.True(t, cfg.strict)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &parseConfig{workers: 2}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 2, cfg.workers)
	})
}

func TestOption_PrimitiveTarget(t *testing.T) {
	var n int
	require.NoError(t, Apply(&n, NoError(func(p *int) { *p = 42 })))
	require.Equal(t, 42, n)
}
