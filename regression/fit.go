package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/arloliu/linfit/errs"
	"github.com/arloliu/linfit/internal/options"
	"github.com/arloliu/linfit/matrix"
)

// Fit computes the ordinary-least-squares fit of y on the columns of x and
// derives the full inferential statistics.
//
// The design matrix is used as given: no intercept column is injected, no
// columns are reordered. Rank-deficient inputs succeed and report aliased
// columns through NaN coefficients and FitResult.Aliased; see the package
// documentation for the rank policy.
//
// Parameters:
//   - x: n×p design matrix, n ≥ p ≥ 1
//   - y: response vector of length n, index-aligned with the rows of x
//   - opts: optional WithRankTolerance, WithoutInference
//
// Returns:
//   - *FitResult: immutable result owned by the caller
//   - error: errs.ErrSingularInput for an empty design,
//     errs.ErrDimensionMismatch for a response-length mismatch or an
//     underdetermined system, errs.ErrInvalidRankTolerance from options
func Fit(x *matrix.Dense, y []float64, opts ...FitOption) (*FitResult, error) {
	cfg := defaultFitConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	n, p := x.Dims()
	if n == 0 || p == 0 {
		return nil, fmt.Errorf("%w: got %dx%d", errs.ErrSingularInput, n, p)
	}
	if len(y) != n {
		return nil, fmt.Errorf("%w: response length %d, design has %d rows", errs.ErrDimensionMismatch, len(y), n)
	}
	if n < p {
		return nil, fmt.Errorf("%w: %d observations for %d predictors", errs.ErrDimensionMismatch, n, p)
	}

	f := factor(x, cfg.RankTolerance)
	coef := f.solve(f.applyQt(y))

	// Fitted values are X·β over the estimable columns only; aliased
	// columns are excluded from the reduced model rather than zeroed.
	fitted := make([]float64, n)
	for i := 0; i < n; i++ {
		row := x.Row(i)
		sum := 0.0
		for j := 0; j < p; j++ {
			if f.aliased[j] {
				continue
			}
			sum += row[j] * coef[j]
		}
		fitted[i] = sum
	}

	residuals := make([]float64, n)
	rss := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted[i]
		residuals[i] = r
		rss += r * r
	}

	mean := stat.Mean(y, nil)
	tss := 0.0
	for i := 0; i < n; i++ {
		d := y[i] - mean
		tss += d * d
	}

	res := &FitResult{
		Coefficients: coef,
		Fitted:       fitted,
		Residuals:    residuals,
		Aliased:      append([]bool(nil), f.aliased...),
		RSS:          rss,
		TSS:          tss,
		Rank:         f.rank,
		DFResidual:   n - f.rank,
		NumObs:       n,
		NumCols:      p,
		Sigma:        math.NaN(),
		RSquared:     math.NaN(),
		AdjRSquared:  math.NaN(),
	}

	computeGoodnessOfFit(res)
	if cfg.Inference {
		computeInference(f, res)
	}

	return res, nil
}
