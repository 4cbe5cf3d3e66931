// SPDX-License-Identifier: MIT

package trajectory

import (
	"errors"
	"fmt"
)

var (
	// ErrNoClasses indicates a dataset with zero classes.
	ErrNoClasses = errors.New("trajectory: dataset has no classes")

	// ErrBadDimension indicates a non-positive point dimension.
	ErrBadDimension = errors.New("trajectory: dimension must be > 0")

	// ErrShortTrajectory indicates a trajectory with fewer than two points;
	// such a trajectory has no forward velocity.
	ErrShortTrajectory = errors.New("trajectory: trajectory has fewer than 2 points")

	// ErrDimensionMismatch indicates a point whose length differs from the
	// dataset dimension.
	ErrDimensionMismatch = errors.New("trajectory: dimension mismatch")

	// ErrNonFinite indicates a NaN or ±Inf coordinate.
	ErrNonFinite = errors.New("trajectory: non-finite coordinate")

	// ErrTargetOutOfRange indicates a target class index outside [0, classes).
	ErrTargetOutOfRange = errors.New("trajectory: target class out of range")

	// ErrSingleClass indicates that the classification set carries only one
	// label, so there is no margin to learn.
	ErrSingleClass = errors.New("trajectory: classification set has a single label")

	// ErrMalformed indicates a syntactically invalid dataset file.
	ErrMalformed = errors.New("trajectory: malformed dataset")

	// ErrBadSize indicates an invalid count passed to a generator.
	ErrBadSize = errors.New("trajectory: invalid size")
)

// locErrorf attaches a class/trajectory location to err.
func locErrorf(fn string, class, traj int, err error) error {
	return fmt.Errorf("trajectory.%s: class %d trajectory %d: %w", fn, class, traj, err)
}
