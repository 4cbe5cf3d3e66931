// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Validators return these sentinels wrapped with the validator name; callers
// match them with errors.Is and never compare strings.

package matrix

import "errors"

var (
	// ErrNilMatrix indicates that a nil matrix or vector was passed in.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrDimensionMismatch indicates incompatible lengths, e.g. a vector whose
	// length differs from the matrix order.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated
	// symmetry within the configured epsilon.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNegativeDiagonal signals a diagonal entry below -eps. A positive
	// semi-definite matrix never has one.
	ErrNegativeDiagonal = errors.New("matrix: negative diagonal entry")

	// ErrOutOfRange indicates that an index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")
)
