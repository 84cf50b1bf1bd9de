package regression

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// computeGoodnessOfFit fills sigma, R², and adjusted R².
//
// A saturated fit (zero residual degrees of freedom) leaves sigma and
// adjusted R² as NaN; a constant response (zero centered TSS) leaves R² and
// adjusted R² as NaN. Both are reported conditions, not errors.
func computeGoodnessOfFit(res *FitResult) {
	if res.DFResidual > 0 {
		res.Sigma = math.Sqrt(res.RSS / float64(res.DFResidual))
	}

	if res.TSS > 0 {
		res.RSquared = 1.0 - res.RSS/res.TSS
		if res.DFResidual > 0 {
			res.AdjRSquared = 1.0 - (1.0-res.RSquared)*float64(res.NumObs-1)/float64(res.DFResidual)
		}
	}
}

// computeInference fills standard errors, t-statistics, and two-sided
// Student-t p-values from the triangular factor.
func computeInference(f *qrFactor, res *FitResult) {
	p := res.NumCols

	se := make([]float64, p)
	tvals := make([]float64, p)
	pvals := make([]float64, p)

	cov := f.covDiagonal()
	df := res.DFResidual

	var tdist distuv.StudentsT
	if df > 0 {
		tdist = distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	}

	for j := 0; j < p; j++ {
		if res.Aliased[j] || df == 0 {
			se[j] = math.NaN()
			tvals[j] = math.NaN()
			pvals[j] = math.NaN()
			continue
		}

		se[j] = res.Sigma * math.Sqrt(cov[j])
		if se[j] == 0 || math.IsNaN(se[j]) {
			tvals[j] = math.NaN()
			pvals[j] = math.NaN()
			continue
		}

		tvals[j] = res.Coefficients[j] / se[j]
		pvals[j] = 2.0 * tdist.Survival(math.Abs(tvals[j]))
	}

	res.StdErrors = se
	res.TValues = tvals
	res.PValues = pvals
}
