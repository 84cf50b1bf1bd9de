// Package matrix provides the dense design-matrix type used by the linfit
// regression engine.
//
// A Dense is a flat, contiguous, row-major float64 buffer with explicit
// dimensions. The layout avoids nested variable-length slices so that the
// engine's inner loops walk cache-friendly memory and so that two matrices
// with equal dimensions and equal buffers are bit-identical.
package matrix

import (
	"fmt"
	"math"
)

// Dense is an n-by-p dense matrix of float64 values in row-major order.
//
// Rows are observations, columns are predictors; column order is
// significant. Dense does not inject an intercept column; callers append a
// column of ones explicitly when they want one.
type Dense struct {
	rows, cols int
	data       []float64
}

// NewDense creates a rows×cols matrix backed by data.
//
// If data is nil a zero-filled buffer is allocated. If data is non-nil its
// length must equal rows*cols; the buffer is used directly without copying.
// NewDense panics on negative dimensions or a mismatched buffer length, in
// line with slice-bounds semantics: these are programmer errors, not input
// conditions.
func NewDense(rows, cols int, data []float64) *Dense {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix: negative dimension %dx%d", rows, cols))
	}
	if data == nil {
		data = make([]float64, rows*cols)
	} else if len(data) != rows*cols {
		panic(fmt.Sprintf("matrix: buffer length %d does not match %dx%d", len(data), rows, cols))
	}

	return &Dense{rows: rows, cols: cols, data: data}
}

// FromRows creates a matrix from a slice of equally sized rows, copying the
// values into a fresh contiguous buffer.
func FromRows(rows [][]float64) (*Dense, error) {
	n := len(rows)
	if n == 0 {
		return NewDense(0, 0, nil), nil
	}

	p := len(rows[0])
	data := make([]float64, 0, n*p)
	for i, row := range rows {
		if len(row) != p {
			return nil, fmt.Errorf("matrix: row %d has %d values, want %d", i, len(row), p)
		}
		data = append(data, row...)
	}

	return NewDense(n, p, data), nil
}

// Dims returns the row and column counts.
func (m *Dense) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// At returns the element at row i, column j.
func (m *Dense) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// Set stores v at row i, column j.
func (m *Dense) Set(i, j int, v float64) {
	m.data[i*m.cols+j] = v
}

// Row returns the i-th row as a slice aliasing the underlying buffer.
func (m *Dense) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// RawData returns the underlying row-major buffer. Mutating it mutates the
// matrix.
func (m *Dense) RawData() []float64 {
	return m.data
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)

	return &Dense{rows: m.rows, cols: m.cols, data: data}
}

// MulVec computes the matrix-vector product m·x into a new slice of length
// rows. Accumulation over columns runs left to right so the result is
// reproducible bit for bit.
func (m *Dense) MulVec(x []float64) []float64 {
	if len(x) != m.cols {
		panic(fmt.Sprintf("matrix: vector length %d does not match %d columns", len(x), m.cols))
	}

	out := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		row := m.Row(i)
		sum := 0.0
		for j := 0; j < m.cols; j++ {
			sum += row[j] * x[j]
		}
		out[i] = sum
	}

	return out
}

// ColNorm returns the Euclidean norm of column j, accumulated sequentially
// from the first row to the last.
func (m *Dense) ColNorm(j int) float64 {
	sum := 0.0
	for i := 0; i < m.rows; i++ {
		v := m.data[i*m.cols+j]
		sum += v * v
	}

	return math.Sqrt(sum)
}

// Equal reports whether two matrices have identical dimensions and
// bit-identical buffers. NaN entries compare by bit pattern, not by IEEE
// semantics, so a matrix always equals its clone.
func (m *Dense) Equal(other *Dense) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, v := range m.data {
		if math.Float64bits(v) != math.Float64bits(other.data[i]) {
			return false
		}
	}

	return true
}
