package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errNegative = errors.New("value cannot be negative")

type testConfig struct {
	value int
	name  string
	calls []string
}

func withValue(v int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if v < 0 {
			return errNegative
		}
		c.value = v
		c.calls = append(c.calls, "value")

		return nil
	})
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies in order", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, withName("a"), withValue(3), withName("b")))
		require.Equal(t, 3, cfg.value)
		require.Equal(t, "b", cfg.name)
		require.Equal(t, []string{"name", "value", "name"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withName("a"), withValue(-1), withName("b"))
		require.ErrorIs(t, err, errNegative)
		require.ErrorContains(t, err, "option 1")
		require.Equal(t, "a", cfg.name)
		require.Equal(t, []string{"name"}, cfg.calls)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{value: 7}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 7, cfg.value)
	})

	t.Run("nil option skipped", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withValue(1)))
		require.Equal(t, 1, cfg.value)
	})
}
