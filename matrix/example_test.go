package matrix_test

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/asvm/matrix"
)

// ExampleValidateCoefficient rejects a matrix with a negative diagonal entry.
func ExampleValidateCoefficient() {
	q := mat.NewSymDense(2, []float64{1, 0.5, 0.5, -2})
	err := matrix.ValidateCoefficient(q)
	fmt.Println(errors.Is(err, matrix.ErrNegativeDiagonal))
	// Output:
	// true
}
