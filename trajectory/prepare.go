// SPDX-License-Identifier: MIT

package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Label values of the classification set.
const (
	LabelTarget = 1.0
	LabelOther  = -1.0
)

// Prepare derives the classification set, the Lyapunov set and the anchor for
// the given target class.
//
// Implementation:
//   - Stage 1: Validate the dataset and the target index.
//   - Stage 2: for every trajectory, emit points 0..n−2 with the unit forward
//     difference as velocity; target trajectories also feed the Lyapunov set
//     and their endpoint feeds the anchor mean.
//   - Stage 3: reject a classification set with a single label.
//
// Errors: Validate errors, ErrTargetOutOfRange, ErrSingleClass.
// Determinism: classes, trajectories and points are visited in input order.
// Complexity: O(total points · Dim).
func Prepare(ds *Dataset, target int) (*TrainingSet, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if target < 0 || target >= len(ds.Classes) {
		return nil, fmt.Errorf("trajectory.Prepare: target=%d classes=%d: %w",
			target, len(ds.Classes), ErrTargetOutOfRange)
	}

	ts := &TrainingSet{
		Dim:    ds.Dim,
		Target: target,
		Anchor: make([]float64, ds.Dim),
	}

	var (
		nPos, nNeg, nEnd int
		c, t             int
	)
	for c = 0; c < len(ds.Classes); c++ {
		label := LabelOther
		if c == target {
			label = LabelTarget
		}
		for _, tr := range ds.Classes[c] {
			last := tr.Len() - 1
			for t = 0; t < last; t++ {
				tp := TrainingPoint{
					Coord:    append([]float64(nil), tr.Points[t]...),
					Velocity: unitStep(tr.Points[t], tr.Points[t+1]),
					Label:    label,
				}
				ts.Classification = append(ts.Classification, tp)
				if c == target {
					ts.Lyapunov = append(ts.Lyapunov, tp)
					nPos++
				} else {
					nNeg++
				}
			}
			if c == target {
				floats.Add(ts.Anchor, tr.Points[last])
				nEnd++
			}
		}
	}
	if nPos == 0 || nNeg == 0 {
		return nil, fmt.Errorf("trajectory.Prepare: target=%d positives=%d negatives=%d: %w",
			target, nPos, nNeg, ErrSingleClass)
	}
	floats.Scale(1/float64(nEnd), ts.Anchor)

	return ts, nil
}

// unitStep returns (b − a)/‖b − a‖, or the zero vector when a == b.
func unitStep(a, b []float64) []float64 {
	v := make([]float64, len(a))
	floats.SubTo(v, b, a)
	if n := floats.Norm(v, 2); n > 0 {
		floats.Scale(1/n, v)
	}

	return v
}
