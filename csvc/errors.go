// SPDX-License-Identifier: MIT

package csvc

import "errors"

var (
	// ErrEmpty indicates an empty training set.
	ErrEmpty = errors.New("csvc: empty training set")

	// ErrLabels indicates labels outside ±1, a label count mismatch, or a
	// set with only one label.
	ErrLabels = errors.New("csvc: labels must be ±1 with both classes present")

	// ErrDimensionMismatch indicates points of different lengths.
	ErrDimensionMismatch = errors.New("csvc: dimension mismatch")
)
