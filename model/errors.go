// SPDX-License-Identifier: MIT

package model

import "errors"

var (
	// ErrNoSupportVectors indicates that no α survived the tolerance filter:
	// the solution did not separate the data.
	ErrNoSupportVectors = errors.New("model: no surviving alpha support vectors")

	// ErrShape indicates a solution whose group sizes do not match the
	// coefficient matrix.
	ErrShape = errors.New("model: solution does not match the training set")

	// ErrDimensionMismatch indicates a query point of the wrong length.
	ErrDimensionMismatch = errors.New("model: dimension mismatch")

	// ErrMalformed indicates a syntactically invalid model file.
	ErrMalformed = errors.New("model: malformed model file")
)

// ErrBadTolerance indicates a relative tolerance outside [0, 1].
var ErrBadTolerance = errors.New("model: relative tolerance must be in [0, 1]")
