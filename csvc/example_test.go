package csvc_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/asvm/csvc"
	"github.com/katalvlaran/asvm/kernel"
)

func ExampleProvider_Train() {
	points := [][]float64{{0, 0}, {0, 1}, {4, 4}, {4, 5}}
	labels := []float64{1, 1, -1, -1}

	p, err := csvc.NewProvider(kernel.Params{Kind: kernel.RBF, Lambda: 0.5}, csvc.WithC(10))
	if err != nil {
		fmt.Println(err)
		return
	}
	m, err := p.Train(context.Background(), points, labels)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(m.Converged, m.Decision([]float64{0, 0.5}) > 0, m.Decision([]float64{4, 4.5}) < 0)
	// Output:
	// true true true
}
