package fixture

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/arloliu/linfit/matrix"
)

// formatValue renders a float64 with 18 fractional digits in scientific
// notation. That is more than the 17 significant digits needed to round
// trip any float64, so ReadCSV recovers the exact bit pattern.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'e', 18, 64)
}

// WriteCSV writes the design matrix and response as CSV with columns
// x0..x{p-1},y, one observation per row.
func WriteCSV(w io.Writer, x *matrix.Dense, y []float64) error {
	n, p := x.Dims()
	if len(y) != n {
		return fmt.Errorf("response length %d does not match %d rows", len(y), n)
	}

	bw := bufio.NewWriter(w)
	for j := 0; j < p; j++ {
		if j > 0 {
			bw.WriteByte(',')
		}
		fmt.Fprintf(bw, "x%d", j)
	}
	bw.WriteString(",y\n")

	for i := 0; i < n; i++ {
		row := x.Row(i)
		for j := 0; j < p; j++ {
			if j > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(formatValue(row[j]))
		}
		bw.WriteByte(',')
		bw.WriteString(formatValue(y[i]))
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// ReadCSV parses a fixture CSV. The last column is the response, all
// preceding columns form the design matrix.
func ReadCSV(r io.Reader) (*matrix.Dense, []float64, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, nil, fmt.Errorf("need at least one predictor and a response, got %d columns", len(header))
	}
	p := len(header) - 1

	var (
		data []float64
		y    []float64
		n    int
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", n+1, err)
		}

		for j := 0; j < p; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d column %d: %w", n+1, j, err)
			}
			data = append(data, v)
		}
		v, err := strconv.ParseFloat(record[p], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d response: %w", n+1, err)
		}
		y = append(y, v)
		n++
	}

	if n == 0 {
		return nil, nil, fmt.Errorf("no observations after header")
	}

	return matrix.NewDense(n, p, data), y, nil
}
