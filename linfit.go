// Package linfit provides ordinary least-squares linear regression with
// full inferential statistics.
//
// Fits are computed by Householder QR factorization, never by normal
// equations, so results stay accurate on ill-conditioned designs.
// Rank-deficient designs are handled rather than rejected: columns that are
// linear combinations of earlier columns are marked aliased and their
// coefficients reported as NaN, the same convention reference statistical
// tools use for not-estimable terms.
//
// # Core Features
//
//   - Householder QR with a relative column-norm rank policy
//   - Standard errors, t-statistics and Student-t p-values
//   - R², adjusted R², residual standard error, centered TSS
//   - NaN sentinels for aliased coefficients and undefined statistics
//   - Bit-for-bit deterministic results on identical inputs
//   - Fixture generation and an independent reference path for validation
//
// # Basic Usage
//
// Fitting a model from row-oriented data:
//
//	import "github.com/arloliu/linfit"
//
//	rows := [][]float64{
//	    {1, 0.5},
//	    {1, 1.0},
//	    {1, 1.5},
//	    {1, 2.0},
//	}
//	y := []float64{1.9, 3.1, 3.9, 5.1}
//
//	res, err := linfit.Fit(rows, y)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Printf("intercept=%.3f slope=%.3f R²=%.3f\n",
//	    res.Coefficients[0], res.Coefficients[1], res.RSquared)
//
// Fitting directly from a fixture CSV file whose last column is the
// response:
//
//	res, err := linfit.FitCSVFile("data.csv")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the regression
// package. For fine-grained control (rank tolerance, skipping inference,
// preallocated design matrices) use the regression and matrix packages
// directly. The fixture, oracle and compress packages form the validation
// harness.
package linfit

import (
	"fmt"
	"os"

	"github.com/arloliu/linfit/fixture"
	"github.com/arloliu/linfit/matrix"
	"github.com/arloliu/linfit/regression"
)

// Fit performs an ordinary least-squares fit of y on the given design rows.
// Each row is one observation; columns are predictors in order. No
// intercept column is injected, append a column of ones when one is wanted.
func Fit(rows [][]float64, y []float64, opts ...regression.FitOption) (*regression.FitResult, error) {
	x, err := matrix.FromRows(rows)
	if err != nil {
		return nil, err
	}

	return regression.Fit(x, y, opts...)
}

// FitCSVFile fits a model from a CSV file in fixture layout: a header row,
// predictor columns left to right, and the response as the trailing column.
func FitCSVFile(path string, opts ...regression.FitOption) (*regression.FitResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	x, y, err := fixture.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return regression.Fit(x, y, opts...)
}
