package model_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/asvm/model"
)

// ExampleRead loads a one-dimensional polynomial model with two α support
// points and no β support points.
func ExampleRead() {
	src := `poly
1
2
0.5
2
0
0
1 1
1 -1
0.0
0
1
-1
`
	c, err := model.Read(strings.NewReader(src))
	if err != nil {
		fmt.Println(err)
		return
	}
	f, _ := c.Value([]float64{0.25})
	y, _ := c.Classify([]float64{-1})
	g, _ := c.Gradient([]float64{0.25})
	fmt.Println(c.Kernel().Kind, c.NumAlpha(), c.NumBeta())
	fmt.Println(f, y, g)
	// Output:
	// poly 2 0
	// 1.5 -1 [4]
}
