package kernel_test

import (
	"fmt"

	"github.com/katalvlaran/asvm/kernel"
)

// ExampleValue evaluates both kernel families on the same pair of points.
func ExampleValue() {
	x := []float64{1, 0}
	y := []float64{0, 1}

	r, _ := kernel.Value(x, y, kernel.Params{Kind: kernel.RBF, Lambda: 0.5})
	p, _ := kernel.Value(x, y, kernel.Params{Kind: kernel.Poly, Lambda: 2})
	fmt.Printf("rbf=%.4f poly=%.0f\n", r, p)
	// Output:
	// rbf=0.3679 poly=1
}

// ExampleEngine_MixedHessian shows the coincident-point identity M = 2λI.
func ExampleEngine_MixedHessian() {
	e, _ := kernel.NewEngine(kernel.Params{Kind: kernel.RBF, Lambda: 1}, 2)
	m := e.MixedHessian([]float64{3, 4}, []float64{3, 4})
	fmt.Println(m.At(0, 0), m.At(0, 1), m.At(1, 1))
	// Output:
	// 2 0 2
}
