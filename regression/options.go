package regression

import (
	"fmt"

	"github.com/arloliu/linfit/errs"
	"github.com/arloliu/linfit/internal/options"
)

// DefaultRankTolerance is the relative threshold below which a column's
// partial norm is treated as numerically zero during elimination. The value
// matches the documented default of the reference tool's QR path; it is not
// a universal constant and may need empirical tuning against a specific
// oracle (see WithRankTolerance).
const DefaultRankTolerance = 1e-7

// FitConfig holds configuration for a single fit.
type FitConfig struct {
	RankTolerance float64
	Inference     bool
}

func defaultFitConfig() FitConfig {
	return FitConfig{
		RankTolerance: DefaultRankTolerance,
		Inference:     true,
	}
}

// FitOption is a functional option for FitConfig.
type FitOption = options.Option[*FitConfig]

// WithRankTolerance sets the relative tolerance used to detect aliased
// (linearly dependent) columns. The tolerance must lie in (0, 1).
func WithRankTolerance(tol float64) FitOption {
	return options.New(func(cfg *FitConfig) error {
		if tol <= 0 || tol >= 1 {
			return fmt.Errorf("%w: %g", errs.ErrInvalidRankTolerance, tol)
		}
		cfg.RankTolerance = tol

		return nil
	})
}

// WithoutInference skips the covariance back-solve and the derived standard
// errors, t-statistics, and p-values. The corresponding FitResult slices
// are nil. Useful when only coefficients and residual diagnostics are
// needed and p is large.
func WithoutInference() FitOption {
	return options.NoError(func(cfg *FitConfig) {
		cfg.Inference = false
	})
}
