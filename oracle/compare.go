package oracle

import (
	"fmt"
	"math"
	"strings"

	"github.com/arloliu/linfit/regression"
)

// DefaultSigDigits is the agreement threshold for cross-implementation
// validation. Two correct QR-based fits on well-posed data agree far beyond
// this; falling short signals an algorithmic difference, not roundoff.
const DefaultSigDigits = 8.0

// SigDigits measures how many significant decimal digits got and want share,
// as -log10 of the relative difference. Identical values, including two
// NaNs, score +Inf. A NaN on only one side scores zero, since a missing
// sentinel is a structural disagreement rather than a numeric one.
func SigDigits(got, want float64) float64 {
	gotNaN := math.IsNaN(got)
	wantNaN := math.IsNaN(want)

	switch {
	case gotNaN && wantNaN:
		return math.Inf(1)
	case gotNaN != wantNaN:
		return 0
	case got == want:
		return math.Inf(1)
	}

	denom := math.Max(math.Abs(got), math.Abs(want))

	return -math.Log10(math.Abs(got-want) / denom)
}

// Mismatch records one field that fell below the agreement threshold.
type Mismatch struct {
	Field  string
	Index  int // -1 for scalar fields
	Got    float64
	Want   float64
	Digits float64
}

func (m Mismatch) String() string {
	if m.Index < 0 {
		return fmt.Sprintf("%s: got %v, want %v (%.2f digits)", m.Field, m.Got, m.Want, m.Digits)
	}

	return fmt.Sprintf("%s[%d]: got %v, want %v (%.2f digits)", m.Field, m.Index, m.Got, m.Want, m.Digits)
}

// Report is the outcome of comparing an engine fit against a reference fit.
type Report struct {
	// MinDigits is the weakest agreement observed across all compared
	// fields, +Inf when every field matched exactly.
	MinDigits  float64
	Mismatches []Mismatch
}

// Passed reports whether every compared field met the threshold.
func (r *Report) Passed() bool {
	return len(r.Mismatches) == 0
}

func (r *Report) String() string {
	if r.Passed() {
		return fmt.Sprintf("agreement ok (min %.2f digits)", r.MinDigits)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "agreement failed (min %.2f digits):", r.MinDigits)
	for _, m := range r.Mismatches {
		sb.WriteString("\n  ")
		sb.WriteString(m.String())
	}

	return sb.String()
}

// Compare checks got against want field by field, requiring at least digits
// significant digits of agreement on every statistic and per-observation
// vector. Structural fields (dimensions, rank, degrees of freedom, the
// aliased mask) must match exactly.
func Compare(got, want *regression.FitResult, digits float64) *Report {
	r := &Report{MinDigits: math.Inf(1)}

	r.compareInt("n", got.NumObs, want.NumObs)
	r.compareInt("p", got.NumCols, want.NumCols)
	r.compareInt("rank", got.Rank, want.Rank)
	r.compareInt("df_residual", got.DFResidual, want.DFResidual)
	r.compareAliased(got.Aliased, want.Aliased)

	r.compareVec("coefficients", got.Coefficients, want.Coefficients, digits)
	r.compareVec("std_errors", got.StdErrors, want.StdErrors, digits)
	r.compareVec("t_values", got.TValues, want.TValues, digits)
	r.compareVec("p_values", got.PValues, want.PValues, digits)
	r.compareVec("fitted", got.Fitted, want.Fitted, digits)
	r.compareVec("residuals", got.Residuals, want.Residuals, digits)

	r.compareScalar("rss", got.RSS, want.RSS, digits)
	r.compareScalar("tss", got.TSS, want.TSS, digits)
	r.compareScalar("r_squared", got.RSquared, want.RSquared, digits)
	r.compareScalar("adj_r_squared", got.AdjRSquared, want.AdjRSquared, digits)
	r.compareScalar("sigma", got.Sigma, want.Sigma, digits)

	return r
}

func (r *Report) compareInt(field string, got, want int) {
	if got != want {
		r.MinDigits = 0
		r.Mismatches = append(r.Mismatches, Mismatch{
			Field: field, Index: -1, Got: float64(got), Want: float64(want),
		})
	}
}

func (r *Report) compareAliased(got, want []bool) {
	if len(got) != len(want) {
		r.MinDigits = 0
		r.Mismatches = append(r.Mismatches, Mismatch{
			Field: "aliased", Index: -1, Got: float64(len(got)), Want: float64(len(want)),
		})

		return
	}
	for i := range got {
		if got[i] != want[i] {
			r.MinDigits = 0
			r.Mismatches = append(r.Mismatches, Mismatch{Field: "aliased", Index: i})
		}
	}
}

func (r *Report) compareScalar(field string, got, want, digits float64) {
	d := SigDigits(got, want)
	if d < r.MinDigits {
		r.MinDigits = d
	}
	if d < digits {
		r.Mismatches = append(r.Mismatches, Mismatch{
			Field: field, Index: -1, Got: got, Want: want, Digits: d,
		})
	}
}

func (r *Report) compareVec(field string, got, want []float64, digits float64) {
	if len(got) != len(want) {
		r.MinDigits = 0
		r.Mismatches = append(r.Mismatches, Mismatch{
			Field: field, Index: -1, Got: float64(len(got)), Want: float64(len(want)),
		})

		return
	}
	for i := range got {
		d := SigDigits(got[i], want[i])
		if d < r.MinDigits {
			r.MinDigits = d
		}
		if d < digits {
			r.Mismatches = append(r.Mismatches, Mismatch{
				Field: field, Index: i, Got: got[i], Want: want[i], Digits: d,
			})
		}
	}
}
