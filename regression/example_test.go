package regression_test

import (
	"fmt"
	"log"

	"github.com/arloliu/linfit/matrix"
	"github.com/arloliu/linfit/regression"
)

// ExampleFit fits a noiseless line y = 1 + 2x through an explicit
// intercept column.
func ExampleFit() {
	x := matrix.NewDense(5, 2, nil)
	y := make([]float64, 5)
	for i := 0; i < 5; i++ {
		x.Set(i, 0, 1.0)
		x.Set(i, 1, float64(i))
		y[i] = 1.0 + 2.0*float64(i)
	}

	result, err := regression.Fit(x, y)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("intercept: %.4f\n", result.Coefficients[0])
	fmt.Printf("slope: %.4f\n", result.Coefficients[1])
	fmt.Printf("R²: %.4f\n", result.RSquared)

	// Output:
	// intercept: 1.0000
	// slope: 2.0000
	// R²: 1.0000
}

// ExampleFit_rankDeficient shows how linearly dependent columns are
// reported instead of raising an error.
func ExampleFit_rankDeficient() {
	// Column 2 duplicates column 1, so only one of the pair is estimable.
	x, err := matrix.FromRows([][]float64{
		{1, 2, 2},
		{1, 3, 3},
		{1, 5, 5},
		{1, 7, 7},
	})
	if err != nil {
		log.Fatal(err)
	}
	y := []float64{4, 6, 10, 14}

	result, err := regression.Fit(x, y)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("rank: %d of %d columns\n", result.Rank, result.NumCols)
	fmt.Printf("aliased: %v\n", result.Aliased)
	fmt.Printf("df residual: %d\n", result.DFResidual)

	// Output:
	// rank: 2 of 3 columns
	// aliased: [false false true]
	// df residual: 2
}
