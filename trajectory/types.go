// SPDX-License-Identifier: MIT

package trajectory

import (
	"fmt"
	"math"
)

// Trajectory is an ordered sequence of points sampled in temporal order.
type Trajectory struct {
	Points [][]float64
}

// Len returns the number of points.
func (t Trajectory) Len() int { return len(t.Points) }

// Dataset groups trajectories by class. Class indices are positions in Classes.
type Dataset struct {
	Dim     int
	Classes [][]Trajectory
}

// NewDataset builds a Dataset from per-class trajectory lists, taking the
// dimension from the first point found, and validates it.
//
// Errors: as Validate.
func NewDataset(classes ...[]Trajectory) (*Dataset, error) {
	ds := &Dataset{Classes: classes}
	for _, cls := range classes {
		for _, tr := range cls {
			if len(tr.Points) > 0 {
				ds.Dim = len(tr.Points[0])
				break
			}
		}
		if ds.Dim > 0 {
			break
		}
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	return ds, nil
}

// NumPoints returns the total number of points over all classes.
func (ds *Dataset) NumPoints() int {
	var n int
	for _, cls := range ds.Classes {
		for _, tr := range cls {
			n += tr.Len()
		}
	}

	return n
}

// Validate checks the structural invariants of the dataset.
//
// Implementation:
//   - Stage 1: at least one class, Dim > 0.
//   - Stage 2: every trajectory has ≥ 2 points of length Dim with finite
//     coordinates.
//
// Errors: ErrNoClasses, ErrBadDimension, ErrShortTrajectory,
// ErrDimensionMismatch, ErrNonFinite.
// Complexity: O(total points · Dim).
func (ds *Dataset) Validate() error {
	if ds == nil || len(ds.Classes) == 0 {
		return fmt.Errorf("trajectory.Validate: %w", ErrNoClasses)
	}
	if ds.Dim <= 0 {
		return fmt.Errorf("trajectory.Validate: dim=%d: %w", ds.Dim, ErrBadDimension)
	}

	var c, k int
	for c = 0; c < len(ds.Classes); c++ {
		for k = 0; k < len(ds.Classes[c]); k++ {
			tr := ds.Classes[c][k]
			if tr.Len() < 2 {
				return locErrorf("Validate", c, k, ErrShortTrajectory)
			}
			for _, p := range tr.Points {
				if len(p) != ds.Dim {
					return locErrorf("Validate", c, k, ErrDimensionMismatch)
				}
				for _, v := range p {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						return locErrorf("Validate", c, k, ErrNonFinite)
					}
				}
			}
		}
	}

	return nil
}

// TrainingPoint is one prepared sample. Label is +1 for the target class and
// −1 otherwise. Velocity is the unit forward difference (zero if the point
// does not move).
type TrainingPoint struct {
	Coord    []float64
	Velocity []float64
	Label    float64
}

// TrainingSet is the output of Prepare.
type TrainingSet struct {
	Dim            int
	Target         int
	Classification []TrainingPoint // M points
	Lyapunov       []TrainingPoint // P points, target class only
	Anchor         []float64       // mean target endpoint
}

// Sizes returns (M, P, N) where N = Dim is the anchor multiplier count.
func (ts *TrainingSet) Sizes() (m, p, n int) {
	return len(ts.Classification), len(ts.Lyapunov), ts.Dim
}

// Labels returns the classification labels in order.
func (ts *TrainingSet) Labels() []float64 {
	out := make([]float64, len(ts.Classification))
	for i, tp := range ts.Classification {
		out[i] = tp.Label
	}

	return out
}

// Coords returns the classification coordinates in order. The inner slices
// are shared with the set.
func (ts *TrainingSet) Coords() [][]float64 {
	out := make([][]float64, len(ts.Classification))
	for i, tp := range ts.Classification {
		out[i] = tp.Coord
	}

	return out
}
