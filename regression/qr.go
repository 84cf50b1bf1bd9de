package regression

import (
	"math"

	"github.com/arloliu/linfit/matrix"
)

// qrFactor holds the in-place Householder factorization of a design matrix.
//
// The qr buffer is row-major n×p. Estimable columns are eliminated at
// consecutive pivot rows 0..rank-1 in caller column order; pivot[k] records
// the elimination row of column k, or -1 when the column is aliased. For an
// estimable column k with pivot row r, rows r..n-1 of that column store the
// Householder vector v (including its first element), the signed diagonal
// of R lives in diag[k], and row r of columns k+1..p-1 holds the
// off-diagonal entries of R. Aliased columns carry a zero diagonal, a -1
// pivot, and an identity reflector (beta 0), so they drop out of every
// subsequent transformation.
//
// Keying the pivot row to the running rank rather than the column index
// keeps R triangular over the estimable columns even when an aliased column
// sits in the middle of the design.
//
// The factorization exists only for the duration of one fit and is never
// exposed outside the package except through derived quantities.
type qrFactor struct {
	n, p    int
	qr      []float64
	beta    []float64 // 2 / (vᵗv) per reflector, 0 for aliased columns
	diag    []float64 // diagonal of R, 0 for aliased columns
	pivot   []int     // elimination row per column, -1 for aliased columns
	aliased []bool
	rank    int
}

// factor computes the Householder QR factorization of x.
//
// A column is declared aliased when the Euclidean norm of its not-yet
// eliminated part falls to tol times its original norm or below; columns
// that are zero from the start are aliased immediately. An aliased column
// consumes no pivot row, so the next estimable column is eliminated at the
// row the skipped column would have used. The caller has already validated
// dimensions.
func factor(x *matrix.Dense, tol float64) *qrFactor {
	n, p := x.Dims()

	f := &qrFactor{
		n:       n,
		p:       p,
		qr:      make([]float64, n*p),
		beta:    make([]float64, p),
		diag:    make([]float64, p),
		pivot:   make([]int, p),
		aliased: make([]bool, p),
	}
	copy(f.qr, x.RawData())

	// Original column norms anchor the relative rank tolerance.
	norm0 := make([]float64, p)
	for j := 0; j < p; j++ {
		norm0[j] = x.ColNorm(j)
	}

	for k := 0; k < p; k++ {
		// Pivot row for this column if it turns out estimable.
		r := f.rank

		// Partial norm of column k over the rows not yet eliminated.
		sum := 0.0
		for i := r; i < n; i++ {
			v := f.qr[i*p+k]
			sum += v * v
		}
		pnorm := math.Sqrt(sum)

		if pnorm <= tol*norm0[k] {
			// Column is (numerically) a linear combination of earlier
			// columns. Leave an identity reflector behind and zero the
			// residual noise so it cannot leak into later columns.
			f.aliased[k] = true
			f.pivot[k] = -1
			for i := r; i < n; i++ {
				f.qr[i*p+k] = 0
			}
			continue
		}

		// Householder reflector: v = x_k + sign(x_rk)·‖x_k‖·e_r, which makes
		// R[r,k] = -sign(x_rk)·‖x_k‖ and avoids cancellation in v[0].
		alpha := f.qr[r*p+k]
		sigma := pnorm
		if alpha < 0 {
			sigma = -pnorm
		}
		f.qr[r*p+k] = alpha + sigma
		f.diag[k] = -sigma
		f.pivot[k] = r

		vtv := 0.0
		for i := r; i < n; i++ {
			v := f.qr[i*p+k]
			vtv += v * v
		}
		f.beta[k] = 2.0 / vtv
		f.rank++

		// Reflect the remaining columns: col_j -= beta·(vᵗcol_j)·v.
		for j := k + 1; j < p; j++ {
			dot := 0.0
			for i := r; i < n; i++ {
				dot += f.qr[i*p+k] * f.qr[i*p+j]
			}
			c := f.beta[k] * dot
			for i := r; i < n; i++ {
				f.qr[i*p+j] -= c * f.qr[i*p+k]
			}
		}
	}

	return f
}

// applyQt returns Qᵗ·y by applying the stored reflectors in factorization
// order. Entry pivot[k] of the result is the coordinate of y along the k-th
// estimable column's direction; solve reads the coordinates through the
// pivot map.
func (f *qrFactor) applyQt(y []float64) []float64 {
	w := make([]float64, f.n)
	copy(w, y)

	for k := 0; k < f.p; k++ {
		if f.aliased[k] {
			continue
		}
		r := f.pivot[k]
		dot := 0.0
		for i := r; i < f.n; i++ {
			dot += f.qr[i*f.p+k] * w[i]
		}
		c := f.beta[k] * dot
		for i := r; i < f.n; i++ {
			w[i] -= c * f.qr[i*f.p+k]
		}
	}

	return w
}

// applyQ returns Q·z for a length-n vector z, applying the reflectors in
// reverse order. Used to reconstruct X from the factorization in tests.
func (f *qrFactor) applyQ(z []float64) []float64 {
	w := make([]float64, f.n)
	copy(w, z)

	for k := f.p - 1; k >= 0; k-- {
		if f.aliased[k] {
			continue
		}
		r := f.pivot[k]
		dot := 0.0
		for i := r; i < f.n; i++ {
			dot += f.qr[i*f.p+k] * w[i]
		}
		c := f.beta[k] * dot
		for i := r; i < f.n; i++ {
			w[i] -= c * f.qr[i*f.p+k]
		}
	}

	return w
}

// solve back-substitutes R·β = Qᵗy over the estimable columns, processing
// them from the last to the first since each step depends only on
// already-resolved later coefficients. Row indices come from the pivot map,
// so every estimable equation participates regardless of where aliased
// columns sit. Aliased columns receive NaN and contribute nothing to other
// equations.
func (f *qrFactor) solve(qty []float64) []float64 {
	coef := make([]float64, f.p)

	for k := f.p - 1; k >= 0; k-- {
		if f.aliased[k] {
			coef[k] = math.NaN()
			continue
		}
		r := f.pivot[k]
		sum := qty[r]
		for j := k + 1; j < f.p; j++ {
			if f.aliased[j] {
				continue
			}
			sum -= f.qr[r*f.p+j] * coef[j]
		}
		coef[k] = sum / f.diag[k]
	}

	return coef
}

// covDiagonal returns the diagonal of R⁻¹·(R⁻¹)ᵗ, the unscaled coefficient
// covariance. Each estimable column c of R⁻¹ is obtained by back-solving
// R·u = e_c over the estimable index set, reading each equation at its
// pivot row; direct inversion of XᵗX is never performed. Aliased positions
// are NaN.
func (f *qrFactor) covDiagonal() []float64 {
	cov := make([]float64, f.p)
	for j := range cov {
		if f.aliased[j] {
			cov[j] = math.NaN()
		}
	}

	u := make([]float64, f.p)
	for c := 0; c < f.p; c++ {
		if f.aliased[c] {
			continue
		}
		for k := c; k >= 0; k-- {
			if f.aliased[k] {
				u[k] = 0
				continue
			}
			r := f.pivot[k]
			rhs := 0.0
			if k == c {
				rhs = 1.0
			}
			sum := rhs
			for j := k + 1; j <= c; j++ {
				if f.aliased[j] {
					continue
				}
				sum -= f.qr[r*f.p+j] * u[j]
			}
			u[k] = sum / f.diag[k]
		}
		for k := 0; k <= c; k++ {
			if f.aliased[k] {
				continue
			}
			cov[k] += u[k] * u[k]
		}
	}

	return cov
}
