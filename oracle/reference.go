// Package oracle computes reference least-squares fits along an independent
// numerical path and compares them against engine results.
//
// The reference fit uses gonum's QR factorization and matrix inverse rather
// than the engine's hand-rolled Householder path, so agreement between the
// two is evidence of correctness rather than of shared code. The oracle is
// restricted to full-rank designs; rank-deficient handling is an engine
// concern and is tested separately.
package oracle

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/arloliu/linfit/errs"
	"github.com/arloliu/linfit/matrix"
	"github.com/arloliu/linfit/regression"
)

// Fit computes a full-rank reference fit with the same statistic set as
// regression.Fit. A design that gonum reports as numerically singular
// returns ErrSingularInput.
func Fit(x *matrix.Dense, y []float64) (*regression.FitResult, error) {
	n, p := x.Dims()
	if n == 0 || p == 0 {
		return nil, fmt.Errorf("%w: design is %dx%d", errs.ErrSingularInput, n, p)
	}
	if len(y) != n {
		return nil, fmt.Errorf("%w: %d observations, %d responses", errs.ErrDimensionMismatch, n, len(y))
	}
	if n < p {
		return nil, fmt.Errorf("%w: %d observations for %d columns", errs.ErrDimensionMismatch, n, p)
	}

	a := mat.NewDense(n, p, x.RawData())

	var qr mat.QR
	qr.Factorize(a)

	var betaVec mat.VecDense
	if err := qr.SolveVecTo(&betaVec, false, mat.NewVecDense(n, y)); err != nil {
		if !isConditionWarning(err) {
			return nil, fmt.Errorf("%w: %v", errs.ErrSingularInput, err)
		}
	}

	beta := make([]float64, p)
	for j := 0; j < p; j++ {
		beta[j] = betaVec.AtVec(j)
	}

	var fittedVec mat.VecDense
	fittedVec.MulVec(a, &betaVec)

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	rss := 0.0
	for i := 0; i < n; i++ {
		fitted[i] = fittedVec.AtVec(i)
		residuals[i] = y[i] - fitted[i]
		rss += residuals[i] * residuals[i]
	}

	mean := stat.Mean(y, nil)
	tss := 0.0
	for _, v := range y {
		d := v - mean
		tss += d * d
	}

	df := n - p

	res := &regression.FitResult{
		Coefficients: beta,
		Fitted:       fitted,
		Residuals:    residuals,
		Aliased:      make([]bool, p),
		RSS:          rss,
		TSS:          tss,
		RSquared:     math.NaN(),
		AdjRSquared:  math.NaN(),
		Sigma:        math.NaN(),
		DFResidual:   df,
		Rank:         p,
		NumObs:       n,
		NumCols:      p,
	}

	if tss > 0 {
		res.RSquared = 1 - rss/tss
		if df > 0 {
			res.AdjRSquared = 1 - (1-res.RSquared)*float64(n-1)/float64(df)
		}
	}

	if err := addInference(res, a, df); err != nil {
		return nil, err
	}

	return res, nil
}

// addInference attaches sigma, standard errors, t-statistics and p-values
// using an explicit (XᵗX)⁻¹, the textbook covariance route the engine
// deliberately avoids.
func addInference(res *regression.FitResult, a *mat.Dense, df int) error {
	p := res.NumCols

	res.StdErrors = nanSlice(p)
	res.TValues = nanSlice(p)
	res.PValues = nanSlice(p)

	if df <= 0 {
		return nil
	}

	sigma2 := res.RSS / float64(df)
	res.Sigma = math.Sqrt(sigma2)

	var xtx mat.Dense
	xtx.Mul(a.T(), a)

	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		if !isConditionWarning(err) {
			return fmt.Errorf("%w: %v", errs.ErrSingularInput, err)
		}
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	for j := 0; j < p; j++ {
		se := math.Sqrt(sigma2 * inv.At(j, j))
		res.StdErrors[j] = se
		if se > 0 {
			t := res.Coefficients[j] / se
			res.TValues[j] = t
			res.PValues[j] = 2 * dist.Survival(math.Abs(t))
		}
	}

	return nil
}

// isConditionWarning reports whether err is gonum's ill-conditioning
// warning, which accompanies a usable result, as opposed to a hard failure.
func isConditionWarning(err error) bool {
	var cond mat.Condition

	return errors.As(err, &cond)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}
