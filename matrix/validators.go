// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for matrix validation checks.
//   - Return plain sentinel errors wrapped with the validator name so call
//     sites can wrap again uniformly.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing.
//   - Symmetry check runs O(n²) on the strict upper triangle only.
//
// Note:
//   - Each composite validator follows a fixed sequence
//     (NotNil → Square → Finite → Symmetric → Diagonal).

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m mat.Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square.
//
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(1).
func ValidateSquare(m mat.Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if r, c := m.Dims(); r != c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures x is non-nil and has exactly n entries.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite scans every entry of m for NaN or ±Inf.
//
// Errors: ErrNilMatrix, ErrNaNInf.
// Complexity: O(r·c).
func ValidateFinite(m mat.Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateFinite", ErrNilMatrix)
	}
	r, c := m.Dims()

	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf(fmt.Sprintf("ValidateFinite(%d,%d)", i, j), ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateFiniteVec scans x for NaN or ±Inf.
// Complexity: O(len(x)).
func ValidateFiniteVec(x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf(fmt.Sprintf("ValidateFiniteVec[%d]", i), ErrNaNInf)
		}
	}

	return nil
}

// ValidateSymmetric checks |A[i,j] − A[j,i]| ≤ tol for all i<j.
//
// Inputs: square matrix m, tolerance tol ≥ 0 (negative is flipped).
// Errors: ErrNilMatrix, ErrNonSquare, ErrNaNInf on a bad tol, ErrAsymmetry.
// Complexity: O(n²). Space: O(1).
// AI-Hints: a *mat.SymDense passes trivially; the check matters for matrices
// imported as *mat.Dense.
func ValidateSymmetric(m mat.Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n, _ := m.Dims()
	if _, ok := m.(mat.Symmetric); ok || n <= 1 {
		return nil // symmetric by representation or nothing to compare
	}

	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ { // scan only upper triangle
			if math.Abs(m.At(i, j)-m.At(j, i)) > tol {
				return validatorErrorf(fmt.Sprintf("ValidateSymmetric(%d,%d)", i, j), ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateNonNegativeDiagonal checks A[i,i] ≥ −tol for every i, a necessary
// condition for positive semi-definiteness.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNegativeDiagonal.
// Complexity: O(n).
func ValidateNonNegativeDiagonal(m mat.Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateNonNegativeDiagonal", err)
	}
	n, _ := m.Dims()
	tol = math.Abs(tol)
	for i := 0; i < n; i++ {
		if m.At(i, i) < -tol {
			return validatorErrorf(fmt.Sprintf("ValidateNonNegativeDiagonal(%d)", i), ErrNegativeDiagonal)
		}
	}

	return nil
}

// ValidateCoefficient runs the composite check applied to a QP coefficient
// matrix: NotNil → Square → Finite (policy) → Symmetric(eps) → Diagonal(eps).
//
// Errors: any sentinel of the individual validators, first failure wins.
// Complexity: O(n²).
func ValidateCoefficient(m mat.Matrix, opts ...Option) error {
	o := gatherOptions(opts...)
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateCoefficient", err)
	}
	if o.validateNaNInf {
		if err := ValidateFinite(m); err != nil {
			return validatorErrorf("ValidateCoefficient", err)
		}
	}
	if err := ValidateSymmetric(m, o.eps); err != nil {
		return validatorErrorf("ValidateCoefficient", err)
	}
	if err := ValidateNonNegativeDiagonal(m, o.eps); err != nil {
		return validatorErrorf("ValidateCoefficient", err)
	}

	return nil
}
