// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/asvm/matrix"
)

// TestValidateSquare covers nil inputs, square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    mat.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"1x1", mat.NewDense(1, 1, nil), nil},
		{"3x3 sym", mat.NewSymDense(3, nil), nil},
		{"2x3", mat.NewDense(2, 3, nil), matrix.ErrNonSquare},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSquare(tc.m)
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Truef(t, errors.Is(err, tc.want),
					"expected errors.Is(%v, %v)", err, tc.want)
			}
		})
	}
}

// TestValidateSymmetric checks the tolerance boundary on a dense input.
func TestValidateSymmetric(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(2, 2, []float64{1, 2, 2 + 1e-12, 3})
	require.NoError(t, matrix.ValidateSymmetric(a, 1e-9))
	assert.ErrorIs(t, matrix.ValidateSymmetric(a, 0), matrix.ErrAsymmetry)
	assert.ErrorIs(t, matrix.ValidateSymmetric(a, math.NaN()), matrix.ErrNaNInf)
	assert.ErrorIs(t, matrix.ValidateSymmetric(mat.NewDense(2, 1, nil), 0), matrix.ErrNonSquare)
	require.NoError(t, matrix.ValidateSymmetric(mat.NewSymDense(4, nil), 0))
}

// TestValidateCoefficient exercises each stage of the composite check.
func TestValidateCoefficient(t *testing.T) {
	t.Parallel()

	good := mat.NewSymDense(2, []float64{2, -1, -1, 2})
	require.NoError(t, matrix.ValidateCoefficient(good))

	nan := mat.NewSymDense(2, []float64{1, math.NaN(), math.NaN(), 1})
	assert.ErrorIs(t, matrix.ValidateCoefficient(nan), matrix.ErrNaNInf)
	// With the scan disabled NaN slips past the finite check; the diagonal is fine.
	require.NoError(t, matrix.ValidateCoefficient(nan, matrix.WithNoValidateNaNInf()))

	neg := mat.NewSymDense(2, []float64{1, 0, 0, -1e-6})
	assert.ErrorIs(t, matrix.ValidateCoefficient(neg), matrix.ErrNegativeDiagonal)
	require.NoError(t, matrix.ValidateCoefficient(neg, matrix.WithEpsilon(1e-3)))

	assert.ErrorIs(t, matrix.ValidateCoefficient(nil), matrix.ErrNilMatrix)
}

// TestValidateVecLen covers nil, short and exact vectors.
func TestValidateVecLen(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, matrix.ValidateVecLen(nil, 0), matrix.ErrNilMatrix)
	assert.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	assert.ErrorIs(t, matrix.ValidateFiniteVec([]float64{0, math.Inf(-1)}), matrix.ErrNaNInf)
}

// TestWithEpsilon_PanicsOnInvalid pins the programmer-error policy.
func TestWithEpsilon_PanicsOnInvalid(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { matrix.WithEpsilon(-1) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.Inf(1)) })
	assert.NotPanics(t, func() { matrix.WithEpsilon(0) })

	o := matrix.NewOptions(matrix.WithEpsilon(0.5), nil, matrix.WithNoValidateNaNInf())
	assert.Equal(t, 0.5, o.Epsilon())
	assert.False(t, o.ValidatesNaNInf())
}
