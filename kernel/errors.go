// SPDX-License-Identifier: MIT
// Package kernel: sentinel errors.
// Every message is prefixed with "kernel: ..."; callers match with errors.Is.

package kernel

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates operands of different length (or of a
	// length different from the engine dimension).
	ErrDimensionMismatch = errors.New("kernel: dimension mismatch")

	// ErrEmptyVector indicates a zero-length operand.
	ErrEmptyVector = errors.New("kernel: empty vector")

	// ErrUnknownKind indicates an unsupported kernel family.
	ErrUnknownKind = errors.New("kernel: unknown kernel kind")

	// ErrBadLambda indicates a kernel parameter outside its domain:
	// RBF requires a finite λ > 0, Poly requires an integer degree ≥ 1.
	ErrBadLambda = errors.New("kernel: invalid lambda")
)

// kernelErrorf wraps err with the public function name that detected it.
func kernelErrorf(fn string, err error) error {
	return fmt.Errorf("kernel.%s: %w", fn, err)
}
