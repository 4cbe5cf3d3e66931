// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/mat"
)

// Symmetric is a read-only view over the packed upper triangle of a
// *mat.SymDense. It shares storage with the source matrix; the source must not
// be mutated while the view is in use.
//
// The SMO loops read Q[i,j] millions of times; SymDense.At pays a bounds check
// and an interface dispatch per call, the view pays one branch.
type Symmetric struct {
	n      int
	stride int
	data   []float64
}

// NewSymmetric returns a view over s.
//
// Implementation:
//   - Stage 1: reject nil.
//   - Stage 2: if s stores its lower triangle, copy it into an upper-stored
//     SymDense first (gonum constructors always store the upper one).
//
// Errors: ErrNilMatrix.
// Complexity: O(1), or O(n²) for the lower-stored copy.
func NewSymmetric(s *mat.SymDense) (*Symmetric, error) {
	if s == nil {
		return nil, validatorErrorf("NewSymmetric", ErrNilMatrix)
	}
	raw := s.RawSymmetric()
	if raw.Uplo != blas.Upper {
		c := mat.NewSymDense(raw.N, nil)
		c.CopySym(s)
		raw = c.RawSymmetric()
	}

	return &Symmetric{n: raw.N, stride: raw.Stride, data: raw.Data}, nil
}

// Dim returns the matrix order.
func (s *Symmetric) Dim() int { return s.n }

// At returns Q[i,j] with bounds checking.
// Errors: ErrOutOfRange.
func (s *Symmetric) At(i, j int) (float64, error) {
	if i < 0 || j < 0 || i >= s.n || j >= s.n {
		return 0, validatorErrorf(fmt.Sprintf("Symmetric.At(%d,%d)", i, j), ErrOutOfRange)
	}

	return s.Get(i, j), nil
}

// Get returns Q[i,j] without bounds checking beyond the slice's own.
func (s *Symmetric) Get(i, j int) float64 {
	if i > j {
		i, j = j, i
	}

	return s.data[i*s.stride+j]
}

// Diag returns Q[i,i].
func (s *Symmetric) Diag(i int) float64 { return s.data[i*s.stride+i] }

// RowTo copies row i into dst (length Dim()) and returns it.
// Complexity: O(n).
func (s *Symmetric) RowTo(dst []float64, i int) []float64 {
	var j int
	for j = 0; j < i; j++ {
		dst[j] = s.data[j*s.stride+i] // column i of the rows above
	}
	copy(dst[i:s.n], s.data[i*s.stride+i:i*s.stride+s.n])

	return dst
}
