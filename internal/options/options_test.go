package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fitConfig struct {
	Tolerance float64
	Inference bool
}

func withTolerance(tol float64) Option[*fitConfig] {
	return New(func(cfg *fitConfig) error {
		if tol <= 0 {
			return errors.New("tolerance must be positive")
		}
		cfg.Tolerance = tol

		return nil
	})
}

func withoutInference() Option[*fitConfig] {
	return NoError(func(cfg *fitConfig) {
		cfg.Inference = false
	})
}

func TestApply(t *testing.T) {
	cfg := &fitConfig{Tolerance: 1e-7, Inference: true}

	err := Apply(cfg, withTolerance(1e-10), withoutInference())
	require.NoError(t, err)
	require.Equal(t, 1e-10, cfg.Tolerance)
	require.False(t, cfg.Inference)
}

func TestApplyValidationFailure(t *testing.T) {
	cfg := &fitConfig{Tolerance: 1e-7}

	err := Apply(cfg, withTolerance(-1))
	require.Error(t, err)
	require.Equal(t, 1e-7, cfg.Tolerance, "failed option must not mutate config")
}

func TestApplyOrder(t *testing.T) {
	cfg := &fitConfig{}

	err := Apply(cfg, withTolerance(1e-4), withTolerance(1e-6))
	require.NoError(t, err)
	require.Equal(t, 1e-6, cfg.Tolerance, "later options win")
}
