// SPDX-License-Identifier: MIT

package smo

import "errors"

var (
	// ErrNilProblem indicates a nil coefficient matrix.
	ErrNilProblem = errors.New("smo: nil problem")

	// ErrBadProblem indicates inconsistent problem sizes or labels outside ±1.
	ErrBadProblem = errors.New("smo: inconsistent problem")

	// ErrGuessLength indicates a warm start with the wrong number of entries.
	ErrGuessLength = errors.New("smo: warm start has wrong length")

	// ErrGuessNonFinite indicates a NaN or ±Inf warm start coefficient.
	ErrGuessNonFinite = errors.New("smo: warm start has non-finite entries")

	// ErrGuessOutOfBox indicates a warm start coefficient outside [0, C].
	ErrGuessOutOfBox = errors.New("smo: warm start violates the box constraint")

	// ErrGuessInfeasible indicates a warm start violating Σ y·α = 0.
	ErrGuessInfeasible = errors.New("smo: warm start violates the equality constraint")

	// ErrNoTrainingSet indicates a warm start request on a problem built
	// without its training set.
	ErrNoTrainingSet = errors.New("smo: problem carries no training set")
)
