// Package regression implements ordinary-least-squares linear regression
// with the full set of inferential statistics reported by classical
// matrix-algebra fits: coefficient standard errors, t-statistics, two-sided
// Student-t p-values, R², adjusted R², and residual diagnostics.
//
// # Numerical Method
//
// Fits are computed through a Householder QR factorization of the design
// matrix, never through the normal equations (XᵗX)⁻¹Xᵗy. Normal equations
// square the condition number of the problem and lose roughly half the
// available precision on ill-conditioned or nearly collinear data; the
// orthogonal factorization keeps the engine in the same accuracy class as
// reference statistical tools, which use the same family of algorithms.
//
// Coefficient covariances are derived by back-solving the triangular factor
// R against the identity, column by column, rather than by inverting XᵗX.
//
// # Rank Deficiency
//
// Linearly dependent columns are not an error. A column whose partial norm
// collapses below a tolerance (relative to its original norm) during
// elimination is flagged as aliased: its coefficient, standard error,
// t-statistic, and p-value are NaN sentinels, and degrees of freedom use
// the numerical rank instead of the nominal column count. The tolerance
// defaults to 1e-7 and is configurable with WithRankTolerance.
//
// # Determinism
//
// Every reduction inside a fit (column norms, dot products, residual and
// total sums of squares) accumulates sequentially from the first element to
// the last. Two fits over bit-identical inputs produce bit-identical
// results, which makes whole FitResult values comparable by fingerprint.
//
// The engine is a pure computation: no retained state between calls, no
// I/O, no goroutines. Independent fits may run concurrently.
//
// # Basic Usage
//
//	x := matrix.NewDense(n, p, data) // include an intercept column of ones if wanted
//	result, err := regression.Fit(x, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Coefficients, result.RSquared)
//
// Callers supply the intercept column explicitly; the engine never injects
// one.
package regression
