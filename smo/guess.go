// SPDX-License-Identifier: MIT

package smo

import (
	"context"
	"fmt"
	"math"
)

// InitialGuessProvider seeds α from an ordinary two-class classifier trained
// on the classification points and labels. The returned slice has one
// coefficient per point.
type InitialGuessProvider interface {
	Classify(ctx context.Context, points [][]float64, labels []float64) ([]float64, error)
}

// GuessFunc adapts a function to InitialGuessProvider.
type GuessFunc func(ctx context.Context, points [][]float64, labels []float64) ([]float64, error)

// Classify implements InitialGuessProvider.
func (f GuessFunc) Classify(ctx context.Context, points [][]float64, labels []float64) ([]float64, error) {
	return f(ctx, points, labels)
}

// ZeroGuess is the trivial provider: all coefficients zero.
type ZeroGuess struct{}

// Classify implements InitialGuessProvider.
func (ZeroGuess) Classify(_ context.Context, points [][]float64, _ []float64) ([]float64, error) {
	return make([]float64, len(points)), nil
}

// checkGuess validates a warm start against the box and the equality
// constraint and returns it clamped to [0, C].
//
// Entries within a tiny slack outside the box are clamped; anything further
// out is rejected. The equality residual must not exceed eqTol·max(1, max α).
func checkGuess(a, y []float64, c, eqTol float64) ([]float64, error) {
	if len(a) != len(y) {
		return nil, fmt.Errorf("got %d want %d: %w", len(a), len(y), ErrGuessLength)
	}
	slack := 1e-9 * math.Max(1, c)
	out := make([]float64, len(a))

	var (
		res, amax float64
		i         int
	)
	for i = 0; i < len(a); i++ {
		v := a[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("index %d: %w", i, ErrGuessNonFinite)
		}
		if v < -slack || v > c+slack {
			return nil, fmt.Errorf("index %d value %g C %g: %w", i, v, c, ErrGuessOutOfBox)
		}
		out[i] = clamp(v, 0, c)
		res += y[i] * out[i]
		amax = math.Max(amax, out[i])
	}
	if math.Abs(res) > eqTol*math.Max(1, amax) {
		return nil, fmt.Errorf("residual %g: %w", res, ErrGuessInfeasible)
	}

	return out, nil
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}

	return x
}
