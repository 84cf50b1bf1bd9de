package fixture

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/linfit/matrix"
)

// DefaultSeed is the seed used for the published fixture set. Regenerating
// with it reproduces the exact datasets byte for byte.
const DefaultSeed = 20250126

// Names lists the fixture cases in generation order.
var Names = []string{
	"basic_100x3",
	"tall_skinny",
	"near_square",
	"ill_conditioned",
	"collinear_almost",
	"different_scales",
	"no_intercept",
	"large_coeffs",
	"small_noise",
	"high_noise",
}

type generator func(rng *rand.Rand) *Dataset

var generators = map[string]generator{
	"basic_100x3":      generateBasic,
	"tall_skinny":      generateTallSkinny,
	"near_square":      generateNearSquare,
	"ill_conditioned":  generateIllConditioned,
	"collinear_almost": generateCollinearAlmost,
	"different_scales": generateDifferentScales,
	"no_intercept":     generateNoIntercept,
	"large_coeffs":     generateLargeCoeffs,
	"small_noise":      generateSmallNoise,
	"high_noise":       generateHighNoise,
}

// Generate produces the named fixture dataset. Each case draws from its own
// RNG seeded with seed, so single cases regenerate independently of the
// rest of the set.
func Generate(name string, seed int64) (*Dataset, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown fixture case %q", name)
	}

	d := gen(rand.New(rand.NewSource(seed)))
	d.Meta.ConditionNumber = conditionNumber(d.X)

	return d, nil
}

// GenerateAll produces every fixture case in Names order.
func GenerateAll(seed int64) ([]*Dataset, error) {
	datasets := make([]*Dataset, 0, len(Names))
	for _, name := range Names {
		d, err := Generate(name, seed)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}

	return datasets, nil
}

// standardNormal draws count standard normal variates.
func standardNormal(rng *rand.Rand, count int) []float64 {
	out := make([]float64, count)
	for i := range out {
		out[i] = rng.NormFloat64()
	}

	return out
}

// designWithIntercept builds an n×p design whose first column is all ones
// and whose remaining columns are standard normal draws.
func designWithIntercept(rng *rand.Rand, n, p int) *matrix.Dense {
	x := matrix.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1.0)
		for j := 1; j < p; j++ {
			x.Set(i, j, rng.NormFloat64())
		}
	}

	return x
}

// noisyResponse computes y = X·beta + sigma·e with standard normal e.
func noisyResponse(rng *rand.Rand, x *matrix.Dense, beta []float64, sigma float64) []float64 {
	y := x.MulVec(beta)
	for i := range y {
		y[i] += sigma * rng.NormFloat64()
	}

	return y
}

// conditionNumber returns the 2-norm condition number of the design.
func conditionNumber(x *matrix.Dense) float64 {
	n, p := x.Dims()

	return mat.Cond(mat.NewDense(n, p, x.RawData()), 2)
}

func generateBasic(rng *rand.Rand) *Dataset {
	const n = 100
	x := designWithIntercept(rng, n, 3)
	beta := []float64{1.0, 2.0, -0.5}
	const sigma = 0.5
	y := noisyResponse(rng, x, beta, sigma)

	return &Dataset{
		Name: "basic_100x3",
		X:    x,
		Y:    y,
		Meta: Metadata{
			Name:        "basic_100x3",
			N:           n,
			P:           3,
			BetaTrue:    beta,
			Sigma:       sigma,
			Description: "Basic well-conditioned regression with intercept",
		},
	}
}

func generateTallSkinny(rng *rand.Rand) *Dataset {
	const n, p = 1000, 5
	x := designWithIntercept(rng, n, p)
	beta := []float64{0.5, 1.0, -1.5, 2.0, -0.25}
	const sigma = 1.0
	y := noisyResponse(rng, x, beta, sigma)

	return &Dataset{
		Name: "tall_skinny",
		X:    x,
		Y:    y,
		Meta: Metadata{
			Name:        "tall_skinny",
			N:           n,
			P:           p,
			BetaTrue:    beta,
			Sigma:       sigma,
			Description: "Tall skinny matrix n >> p",
		},
	}
}

func generateNearSquare(rng *rand.Rand) *Dataset {
	const n, p = 50, 45
	x := designWithIntercept(rng, n, p)
	beta := standardNormal(rng, p)
	const sigma = 0.1
	y := noisyResponse(rng, x, beta, sigma)

	return &Dataset{
		Name: "near_square",
		X:    x,
		Y:    y,
		Meta: Metadata{
			Name:        "near_square",
			N:           n,
			P:           p,
			BetaTrue:    beta,
			Sigma:       sigma,
			Description: "Nearly square matrix, low degrees of freedom",
		},
	}
}

// generateIllConditioned builds a design with prescribed singular values
// spanning six orders of magnitude, then prepends an intercept column.
func generateIllConditioned(rng *rand.Rand) *Dataset {
	const n, k = 100, 5
	singularValues := []float64{1e6, 1e4, 1e2, 1e1, 1.0}

	u := orthonormal(rng, n, k)
	v := orthonormal(rng, k, k)

	var scaled mat.Dense
	scaled.Mul(u, mat.NewDiagDense(k, singularValues))
	var core mat.Dense
	core.Mul(&scaled, v.T())

	const p = k + 1
	x := matrix.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1.0)
		for j := 0; j < k; j++ {
			x.Set(i, j+1, core.At(i, j))
		}
	}

	beta := []float64{1.0, 0.5, -0.3, 0.2, -0.1, 0.05}
	const sigma = 0.1
	y := noisyResponse(rng, x, beta, sigma)

	return &Dataset{
		Name: "ill_conditioned",
		X:    x,
		Y:    y,
		Meta: Metadata{
			Name:        "ill_conditioned",
			N:           n,
			P:           p,
			BetaTrue:    beta,
			Sigma:       sigma,
			Description: "Ill-conditioned matrix with high condition number",
		},
	}
}

// orthonormal draws a random matrix and returns the orthonormal factor of
// its QR decomposition, rows×cols with cols <= rows.
func orthonormal(rng *rand.Rand, rows, cols int) *mat.Dense {
	raw := mat.NewDense(rows, cols, standardNormal(rng, rows*cols))

	var qr mat.QR
	qr.Factorize(raw)

	var q mat.Dense
	qr.QTo(&q)

	return q.Slice(0, rows, 0, cols).(*mat.Dense)
}

func generateCollinearAlmost(rng *rand.Rand) *Dataset {
	const n, p = 100, 4

	x1 := standardNormal(rng, n)
	x2 := standardNormal(rng, n)

	x := matrix.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1.0)
		x.Set(i, 1, x1[i])
		x.Set(i, 2, x2[i])
		// x3 is almost x1 + x2, correlation above 0.999.
		x.Set(i, 3, x1[i]+x2[i]+0.01*rng.NormFloat64())
	}

	beta := []float64{1.0, 2.0, -1.0, 0.5}
	const sigma = 0.5
	y := noisyResponse(rng, x, beta, sigma)

	return &Dataset{
		Name: "collinear_almost",
		X:    x,
		Y:    y,
		Meta: Metadata{
			Name:        "collinear_almost",
			N:           n,
			P:           p,
			BetaTrue:    beta,
			Sigma:       sigma,
			Description: "Near-collinear predictors (x3 close to x1 + x2)",
		},
	}
}

func generateDifferentScales(rng *rand.Rand) *Dataset {
	const n, p = 100, 4
	scales := []float64{1e-6, 1.0, 1e6}

	x := matrix.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1.0)
		for j, scale := range scales {
			x.Set(i, j+1, scale*rng.NormFloat64())
		}
	}

	// Coefficients compensate the scales so each term contributes O(1).
	beta := []float64{1.0, 1e6, 1.0, 1e-6}
	const sigma = 0.5
	y := noisyResponse(rng, x, beta, sigma)

	return &Dataset{
		Name: "different_scales",
		X:    x,
		Y:    y,
		Meta: Metadata{
			Name:        "different_scales",
			N:           n,
			P:           p,
			BetaTrue:    beta,
			Sigma:       sigma,
			Description: "Predictors on vastly different scales",
		},
	}
}

func generateNoIntercept(rng *rand.Rand) *Dataset {
	const n, p = 100, 3

	x := matrix.NewDense(n, p, standardNormal(rng, n*p))
	for j := 0; j < p; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += x.At(i, j)
		}
		mean := sum / n
		for i := 0; i < n; i++ {
			x.Set(i, j, x.At(i, j)-mean)
		}
	}

	beta := []float64{2.0, -1.0, 0.5}
	const sigma = 0.3
	y := noisyResponse(rng, x, beta, sigma)

	var ySum float64
	for _, v := range y {
		ySum += v
	}
	yMean := ySum / n
	for i := range y {
		y[i] -= yMean
	}

	return &Dataset{
		Name: "no_intercept",
		X:    x,
		Y:    y,
		Meta: Metadata{
			Name:        "no_intercept",
			N:           n,
			P:           p,
			BetaTrue:    beta,
			Sigma:       sigma,
			Centered:    true,
			Description: "Centered data, no intercept term",
		},
	}
}

func generateLargeCoeffs(rng *rand.Rand) *Dataset {
	const n = 100
	x := designWithIntercept(rng, n, 3)
	beta := []float64{1e4, 5e3, -2e3}
	const sigma = 100.0
	y := noisyResponse(rng, x, beta, sigma)

	return &Dataset{
		Name: "large_coeffs",
		X:    x,
		Y:    y,
		Meta: Metadata{
			Name:        "large_coeffs",
			N:           n,
			P:           3,
			BetaTrue:    beta,
			Sigma:       sigma,
			Description: "Large coefficient values",
		},
	}
}

func generateSmallNoise(rng *rand.Rand) *Dataset {
	const n = 100
	x := designWithIntercept(rng, n, 3)
	beta := []float64{1.0, 2.0, -0.5}
	const sigma = 1e-6
	y := noisyResponse(rng, x, beta, sigma)

	return &Dataset{
		Name: "small_noise",
		X:    x,
		Y:    y,
		Meta: Metadata{
			Name:        "small_noise",
			N:           n,
			P:           3,
			BetaTrue:    beta,
			Sigma:       sigma,
			Description: "Nearly perfect fit",
		},
	}
}

func generateHighNoise(rng *rand.Rand) *Dataset {
	const n = 100
	x := designWithIntercept(rng, n, 3)
	beta := []float64{1.0, 2.0, -0.5}
	const sigma = 5.0
	y := noisyResponse(rng, x, beta, sigma)

	return &Dataset{
		Name: "high_noise",
		X:    x,
		Y:    y,
		Meta: Metadata{
			Name:        "high_noise",
			N:           n,
			P:           3,
			BetaTrue:    beta,
			Sigma:       sigma,
			Description: "High residual variance",
		},
	}
}
