package regression

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/linfit/errs"
	"github.com/arloliu/linfit/matrix"
)

// noisyResponse builds y = X·beta + noise with a deterministic generator.
func noisyResponse(x *matrix.Dense, beta []float64, noise float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	y := x.MulVec(beta)
	for i := range y {
		y[i] += noise * rng.NormFloat64()
	}

	return y
}

func TestFitRecoversExactLine(t *testing.T) {
	// y = 1 + 2x with zero noise: coefficients recovered to machine
	// precision and R² is exactly 1 up to rounding.
	x := matrix.NewDense(5, 2, nil)
	y := make([]float64, 5)
	for i := 0; i < 5; i++ {
		x.Set(i, 0, 1.0)
		x.Set(i, 1, float64(i))
		y[i] = 1.0 + 2.0*float64(i)
	}

	res, err := Fit(x, y)
	require.NoError(t, err)

	require.InDelta(t, 1.0, res.Coefficients[0], 1e-12)
	require.InDelta(t, 2.0, res.Coefficients[1], 1e-12)
	require.InDelta(t, 1.0, res.RSquared, 1e-12)
	require.Equal(t, 2, res.Rank)
	require.Equal(t, 3, res.DFResidual)
	for i := range y {
		require.InDelta(t, 0.0, res.Residuals[i], 1e-12)
	}
}

func TestFitResidualIdentity(t *testing.T) {
	x := randomDesign(t, 50, 4, 11)
	y := noisyResponse(x, []float64{1, 2, -0.5, 0.25}, 0.5, 12)

	res, err := Fit(x, y)
	require.NoError(t, err)
	require.Equal(t, 4, res.Rank)

	// fitted + residual == response, elementwise.
	for i := range y {
		sum := res.Fitted[i] + res.Residuals[i]
		require.InEpsilon(t, y[i], sum, 1e-9)
	}

	// RSS == sum of squared residuals.
	rss := 0.0
	for _, r := range res.Residuals {
		rss += r * r
	}
	require.InEpsilon(t, rss, res.RSS, 1e-12)

	// TSS is centered.
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	tss := 0.0
	for _, v := range y {
		tss += (v - mean) * (v - mean)
	}
	require.InEpsilon(t, tss, res.TSS, 1e-12)
}

func TestFitIdentityDesign(t *testing.T) {
	// p == n with the identity matrix: a saturated, full-rank fit. The
	// coefficients reproduce y, residuals vanish, and every inferential
	// statistic is undefined.
	n := 6
	x := matrix.NewDense(n, n, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x.Set(i, i, 1.0)
		y[i] = float64(i) + 0.5
	}

	res, err := Fit(x, y)
	require.NoError(t, err)

	require.Equal(t, n, res.Rank)
	require.Equal(t, 0, res.DFResidual)
	require.InDelta(t, 0.0, res.RSS, 1e-18)
	require.InDelta(t, 1.0, res.RSquared, 1e-12)
	for i := 0; i < n; i++ {
		require.InDelta(t, y[i], res.Coefficients[i], 1e-12)
		require.InDelta(t, 0.0, res.Residuals[i], 1e-12)
	}

	require.True(t, math.IsNaN(res.Sigma), "sigma undefined at zero degrees of freedom")
	require.True(t, math.IsNaN(res.AdjRSquared))
	for j := 0; j < n; j++ {
		require.True(t, math.IsNaN(res.StdErrors[j]))
		require.True(t, math.IsNaN(res.TValues[j]))
		require.True(t, math.IsNaN(res.PValues[j]))
	}
}

func TestFitResponseEqualsColumn(t *testing.T) {
	// When y is exactly 3× one design column, that coefficient is 3 and
	// the others are ~0; fitted values reproduce y.
	x := randomDesign(t, 40, 4, 13)
	y := make([]float64, 40)
	for i := 0; i < 40; i++ {
		y[i] = 3.0 * x.At(i, 2)
	}

	res, err := Fit(x, y)
	require.NoError(t, err)

	require.InDelta(t, 3.0, res.Coefficients[2], 1e-9)
	for _, j := range []int{0, 1, 3} {
		require.InDelta(t, 0.0, res.Coefficients[j], 1e-9)
	}
	for i := range y {
		require.InDelta(t, y[i], res.Fitted[i], 1e-9)
	}
}

func TestFitRankDeficient(t *testing.T) {
	// Column 3 is exactly column 1 + column 2: rank drops by one, the
	// dependent coefficient is a NaN sentinel, and degrees of freedom use
	// the numerical rank.
	n := 30
	rng := rand.New(rand.NewSource(14))
	x := matrix.NewDense(n, 4, nil)
	for i := 0; i < n; i++ {
		a, b := rng.NormFloat64(), rng.NormFloat64()
		x.Set(i, 0, 1.0)
		x.Set(i, 1, a)
		x.Set(i, 2, b)
		x.Set(i, 3, a+b)
	}
	y := noisyResponse(x, []float64{1, 2, -1, 0}, 0.5, 15)

	res, err := Fit(x, y)
	require.NoError(t, err, "rank deficiency is not an error")

	require.Equal(t, 3, res.Rank)
	require.Equal(t, n-3, res.DFResidual)
	require.Equal(t, []bool{false, false, false, true}, res.Aliased)
	require.True(t, math.IsNaN(res.Coefficients[3]))
	require.True(t, math.IsNaN(res.StdErrors[3]))
	require.True(t, math.IsNaN(res.TValues[3]))
	require.True(t, math.IsNaN(res.PValues[3]))

	// Estimable statistics stay finite and the residual identity holds.
	for _, j := range []int{0, 1, 2} {
		require.False(t, math.IsNaN(res.Coefficients[j]))
		require.False(t, math.IsNaN(res.StdErrors[j]))
		require.Greater(t, res.StdErrors[j], 0.0)
	}
	for i := range y {
		require.InEpsilon(t, y[i], res.Fitted[i]+res.Residuals[i], 1e-9)
	}
}

func TestFitRankDeficientMiddleColumn(t *testing.T) {
	// Column 1 duplicates column 0 and an estimable column follows it. The
	// estimable coefficients, residual diagnostics, and standard errors must
	// match a fit on the reduced design with the duplicate removed; the
	// aliased column only contributes its NaN sentinel.
	n := 40
	rng := rand.New(rand.NewSource(26))
	full := matrix.NewDense(n, 3, nil)
	reduced := matrix.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		v := rng.NormFloat64()
		full.Set(i, 0, 1.0)
		full.Set(i, 1, 1.0)
		full.Set(i, 2, v)
		reduced.Set(i, 0, 1.0)
		reduced.Set(i, 1, v)
	}
	y := noisyResponse(reduced, []float64{1, 1}, 0.5, 27)

	fr, err := Fit(full, y)
	require.NoError(t, err)
	rr, err := Fit(reduced, y)
	require.NoError(t, err)

	require.Equal(t, 2, fr.Rank)
	require.Equal(t, []bool{false, true, false}, fr.Aliased)
	require.True(t, math.IsNaN(fr.Coefficients[1]))
	require.Equal(t, rr.DFResidual, fr.DFResidual)

	require.InDelta(t, rr.Coefficients[0], fr.Coefficients[0], 1e-10)
	require.InDelta(t, rr.Coefficients[1], fr.Coefficients[2], 1e-10)
	require.InDelta(t, rr.RSS, fr.RSS, 1e-9)
	require.InDelta(t, rr.Sigma, fr.Sigma, 1e-10)
	require.InDelta(t, rr.RSquared, fr.RSquared, 1e-12)
	require.InDelta(t, rr.StdErrors[0], fr.StdErrors[0], 1e-10)
	require.InDelta(t, rr.StdErrors[1], fr.StdErrors[2], 1e-10)
	for i := range y {
		require.InDelta(t, rr.Fitted[i], fr.Fitted[i], 1e-9)
	}
}

func TestFitConstantResponse(t *testing.T) {
	// Constant y against an intercept column: zero centered TSS makes R²
	// undefined, but the coefficient is the constant itself.
	n := 10
	x := matrix.NewDense(n, 1, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1.0)
		y[i] = 5.0
	}

	res, err := Fit(x, y)
	require.NoError(t, err)

	require.InDelta(t, 5.0, res.Coefficients[0], 1e-12)
	require.InDelta(t, 0.0, res.RSS, 1e-18)
	require.Zero(t, res.TSS)
	require.True(t, math.IsNaN(res.RSquared))
	require.True(t, math.IsNaN(res.AdjRSquared))
}

func TestFitPValueRange(t *testing.T) {
	x := randomDesign(t, 60, 3, 16)
	y := noisyResponse(x, []float64{0.5, 4, 0}, 1.0, 17)

	res, err := Fit(x, y)
	require.NoError(t, err)

	for j := 0; j < 3; j++ {
		require.GreaterOrEqual(t, res.PValues[j], 0.0)
		require.LessOrEqual(t, res.PValues[j], 1.0)
	}
	// The strong predictor must be far more significant than the null one.
	require.Less(t, res.PValues[1], res.PValues[2])
}

func TestFitDeterministic(t *testing.T) {
	x := randomDesign(t, 50, 4, 18)
	y := noisyResponse(x, []float64{1, 2, -0.5, 0.25}, 0.5, 19)

	a, err := Fit(x, y)
	require.NoError(t, err)
	b, err := Fit(x, y)
	require.NoError(t, err)

	requireBitIdentical(t, a, b)
}

// requireBitIdentical asserts two results agree bit for bit, NaN included.
func requireBitIdentical(t *testing.T, a, b *FitResult) {
	t.Helper()

	sameBits := func(x, y []float64) {
		t.Helper()
		require.Equal(t, len(x), len(y))
		for i := range x {
			require.Equal(t, math.Float64bits(x[i]), math.Float64bits(y[i]))
		}
	}

	sameBits(a.Coefficients, b.Coefficients)
	sameBits(a.StdErrors, b.StdErrors)
	sameBits(a.TValues, b.TValues)
	sameBits(a.PValues, b.PValues)
	sameBits(a.Fitted, b.Fitted)
	sameBits(a.Residuals, b.Residuals)
	require.Equal(t, a.Aliased, b.Aliased)
	require.Equal(t, math.Float64bits(a.RSS), math.Float64bits(b.RSS))
	require.Equal(t, math.Float64bits(a.TSS), math.Float64bits(b.TSS))
	require.Equal(t, math.Float64bits(a.RSquared), math.Float64bits(b.RSquared))
	require.Equal(t, math.Float64bits(a.AdjRSquared), math.Float64bits(b.AdjRSquared))
	require.Equal(t, math.Float64bits(a.Sigma), math.Float64bits(b.Sigma))
	require.Equal(t, a.DFResidual, b.DFResidual)
	require.Equal(t, a.Rank, b.Rank)
}

func TestFitDimensionErrors(t *testing.T) {
	x := matrix.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	_, err := Fit(x, []float64{1, 2})
	require.ErrorIs(t, err, errs.ErrDimensionMismatch, "underdetermined system")

	x = matrix.NewDense(3, 2, nil)
	_, err = Fit(x, []float64{1, 2})
	require.ErrorIs(t, err, errs.ErrDimensionMismatch, "response length mismatch")
}

func TestFitSingularInput(t *testing.T) {
	_, err := Fit(matrix.NewDense(0, 0, nil), nil)
	require.ErrorIs(t, err, errs.ErrSingularInput)

	_, err = Fit(matrix.NewDense(5, 0, nil), make([]float64, 5))
	require.ErrorIs(t, err, errs.ErrSingularInput)
}

func TestFitOptionValidation(t *testing.T) {
	x := randomDesign(t, 10, 2, 20)
	y := noisyResponse(x, []float64{1, 1}, 0.1, 21)

	_, err := Fit(x, y, WithRankTolerance(0))
	require.ErrorIs(t, err, errs.ErrInvalidRankTolerance)

	_, err = Fit(x, y, WithRankTolerance(1.5))
	require.ErrorIs(t, err, errs.ErrInvalidRankTolerance)
}

func TestFitWithoutInference(t *testing.T) {
	x := randomDesign(t, 20, 3, 22)
	y := noisyResponse(x, []float64{1, -1, 2}, 0.3, 23)

	res, err := Fit(x, y, WithoutInference())
	require.NoError(t, err)

	require.Nil(t, res.StdErrors)
	require.Nil(t, res.TValues)
	require.Nil(t, res.PValues)
	require.NotNil(t, res.Coefficients)
	require.False(t, math.IsNaN(res.Sigma), "goodness of fit is still computed")
}

func TestFitIllConditioned(t *testing.T) {
	// Predictors on wildly different scales stay full rank and keep the
	// residual identity; a normal-equations solver would struggle here.
	n := 50
	rng := rand.New(rand.NewSource(24))
	x := matrix.NewDense(n, 4, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1.0)
		x.Set(i, 1, 1e-6*rng.NormFloat64())
		x.Set(i, 2, rng.NormFloat64())
		x.Set(i, 3, 1e6*rng.NormFloat64())
	}
	y := noisyResponse(x, []float64{1, 1e6, 1, 1e-6}, 0.5, 25)

	res, err := Fit(x, y)
	require.NoError(t, err)
	require.Equal(t, 4, res.Rank)

	for i := range y {
		require.InEpsilon(t, y[i], res.Fitted[i]+res.Residuals[i], 1e-9)
	}
	// The tiny-scale predictor has a huge sampling variance; only the
	// order of magnitude is checked.
	require.InDelta(t, 1e6, res.Coefficients[1], 5e5)
	require.InDelta(t, 1.0, res.Coefficients[2], 0.5)
}
