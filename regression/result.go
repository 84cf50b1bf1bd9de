package regression

import (
	"encoding/json"
	"fmt"
	"math"
)

// FitResult is the immutable outcome of one least-squares fit.
//
// All statistics are reported at full float64 precision; nothing is rounded
// before serialization. Not-estimable coefficients and numerically
// undefined statistics are NaN sentinels, never silent zeros. A FitResult
// is created once per Fit call and never mutated afterwards; it is owned
// solely by the caller.
//
// Invariants:
//   - Fitted[i] + Residuals[i] == y[i] within floating-point tolerance
//   - RSS == Σ Residuals[i]²
//   - Rank ≤ min(NumObs, NumCols) and DFResidual == NumObs − Rank
//   - Aliased[j] implies Coefficients[j] is NaN
type FitResult struct {
	// Coefficients holds β, length NumCols; NaN at aliased positions.
	Coefficients []float64
	// StdErrors, TValues, and PValues are length NumCols, or nil when the
	// fit was run with WithoutInference. All three are NaN at aliased
	// positions and everywhere when DFResidual is zero.
	StdErrors []float64
	TValues   []float64
	PValues   []float64
	// Fitted is X·β over the estimable columns; Residuals is y − Fitted.
	Fitted    []float64
	Residuals []float64
	// Aliased marks columns excluded as linear combinations of earlier
	// columns.
	Aliased []bool

	RSS         float64
	TSS         float64 // centered: Σ(y − mean(y))²
	RSquared    float64 // NaN when TSS is zero
	AdjRSquared float64 // NaN when TSS is zero or DFResidual is zero
	Sigma       float64 // residual standard error; NaN when DFResidual is zero

	DFResidual int
	Rank       int
	NumObs     int
	NumCols    int
}

// String returns a one-line summary of the fit.
func (r *FitResult) String() string {
	return fmt.Sprintf("FitResult{n: %d, p: %d, rank: %d, R²: %.6f, sigma: %.6g}",
		r.NumObs, r.NumCols, r.Rank, r.RSquared, r.Sigma)
}

// fitResultRecord is the flat serialized form of a FitResult. NaN has no
// JSON representation, so every float travels as a nullable value with NaN
// mapped to null, matching how reference tools export NA.
type fitResultRecord struct {
	Coefficients []*float64 `json:"coefficients"`
	StdErrors    []*float64 `json:"std_errors,omitempty"`
	TValues      []*float64 `json:"t_values,omitempty"`
	PValues      []*float64 `json:"p_values,omitempty"`
	Fitted       []*float64 `json:"fitted"`
	Residuals    []*float64 `json:"residuals"`
	Aliased      []bool     `json:"aliased"`
	RSS          *float64   `json:"rss"`
	TSS          *float64   `json:"tss"`
	RSquared     *float64   `json:"r_squared"`
	AdjRSquared  *float64   `json:"adj_r_squared"`
	Sigma        *float64   `json:"sigma"`
	DFResidual   int        `json:"df_residual"`
	Rank         int        `json:"rank"`
	NumObs       int        `json:"n"`
	NumCols      int        `json:"p"`
}

// MarshalJSON encodes the result as a flat record with NaN as null.
func (r *FitResult) MarshalJSON() ([]byte, error) {
	rec := fitResultRecord{
		Coefficients: floatsToNullable(r.Coefficients),
		StdErrors:    floatsToNullable(r.StdErrors),
		TValues:      floatsToNullable(r.TValues),
		PValues:      floatsToNullable(r.PValues),
		Fitted:       floatsToNullable(r.Fitted),
		Residuals:    floatsToNullable(r.Residuals),
		Aliased:      r.Aliased,
		RSS:          nullable(r.RSS),
		TSS:          nullable(r.TSS),
		RSquared:     nullable(r.RSquared),
		AdjRSquared:  nullable(r.AdjRSquared),
		Sigma:        nullable(r.Sigma),
		DFResidual:   r.DFResidual,
		Rank:         r.Rank,
		NumObs:       r.NumObs,
		NumCols:      r.NumCols,
	}

	return json.Marshal(rec)
}

// UnmarshalJSON decodes a flat record, mapping null back to NaN.
func (r *FitResult) UnmarshalJSON(data []byte) error {
	var rec fitResultRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	r.Coefficients = nullableToFloats(rec.Coefficients)
	r.StdErrors = nullableToFloats(rec.StdErrors)
	r.TValues = nullableToFloats(rec.TValues)
	r.PValues = nullableToFloats(rec.PValues)
	r.Fitted = nullableToFloats(rec.Fitted)
	r.Residuals = nullableToFloats(rec.Residuals)
	r.Aliased = rec.Aliased
	r.RSS = fromNullable(rec.RSS)
	r.TSS = fromNullable(rec.TSS)
	r.RSquared = fromNullable(rec.RSquared)
	r.AdjRSquared = fromNullable(rec.AdjRSquared)
	r.Sigma = fromNullable(rec.Sigma)
	r.DFResidual = rec.DFResidual
	r.Rank = rec.Rank
	r.NumObs = rec.NumObs
	r.NumCols = rec.NumCols

	return nil
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}

	return &v
}

func fromNullable(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}

	return *v
}

func floatsToNullable(vals []float64) []*float64 {
	if vals == nil {
		return nil
	}
	out := make([]*float64, len(vals))
	for i := range vals {
		out[i] = nullable(vals[i])
	}

	return out
}

func nullableToFloats(vals []*float64) []float64 {
	if vals == nil {
		return nil
	}
	out := make([]float64, len(vals))
	for i := range vals {
		out[i] = fromNullable(vals[i])
	}

	return out
}
