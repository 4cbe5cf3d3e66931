// SPDX-License-Identifier: MIT

package modulation

import "errors"

var (
	// ErrNilSet indicates a nil training set.
	ErrNilSet = errors.New("modulation: nil training set")

	// ErrInvalidMatrix indicates that the assembled matrix failed validation
	// (non-finite entries or a negative diagonal), usually from an extreme
	// kernel parameter.
	ErrInvalidMatrix = errors.New("modulation: assembled matrix is invalid")
)
