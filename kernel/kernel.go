// SPDX-License-Identifier: MIT

// Package kernel - kernel values and first derivatives.
//
// Purpose:
//   - Provide k(x1,x2) and ∂k/∂x for the RBF and polynomial families.
//   - Offer a validated Engine whose methods skip per-call checks, for the
//     O(n²) loops of the modulation builder and the classifier.
//
// Determinism:
//   - Fixed loop orders, no map iteration, no hidden state.

package kernel

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Engine evaluates one kernel configuration on vectors of a fixed dimension.
// The zero value is not usable; construct with NewEngine.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	p   Params
	dim int
}

// NewEngine validates p and dim once and returns an Engine bound to them.
//
// Errors:
//   - ErrBadLambda / ErrUnknownKind from Params.Validate.
//   - ErrEmptyVector when dim <= 0.
//
// Complexity: O(1).
func NewEngine(p Params, dim int) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if dim <= 0 {
		return nil, kernelErrorf("NewEngine", ErrEmptyVector)
	}

	return &Engine{p: p, dim: dim}, nil
}

// Params returns the kernel configuration.
func (e *Engine) Params() Params { return e.p }

// Dim returns the vector dimension the engine was built for.
func (e *Engine) Dim() int { return e.dim }

// Value returns k(x1, x2). Inputs must have length Dim().
// Complexity: O(dim).
func (e *Engine) Value(x1, x2 []float64) float64 {
	switch e.p.Kind {
	case Poly:
		return math.Pow(floats.Dot(x1, x2)+1, e.p.Lambda)
	default:
		return math.Exp(-e.p.Lambda * sqDist(x1, x2))
	}
}

// GradientTo writes ∂k/∂x1 (wrt == First) or ∂k/∂x2 (wrt == Second) into
// dst and returns it. dst must have length Dim().
//
// Implementation:
//   - RBF:  ∂k/∂x1 = −2λ k (x1 − x2),   ∂k/∂x2 = +2λ k (x1 − x2).
//   - Poly: ∂k/∂x1 = λ s^(λ−1) x2,      ∂k/∂x2 = λ s^(λ−1) x1,  s = x1·x2 + 1.
//
// Complexity: O(dim), no allocations.
func (e *Engine) GradientTo(dst, x1, x2 []float64, wrt Arg) []float64 {
	switch e.p.Kind {
	case Poly:
		s := floats.Dot(x1, x2) + 1
		c := e.p.Lambda * math.Pow(s, e.p.Lambda-1)
		src := x2
		if wrt == Second {
			src = x1
		}
		floats.ScaleTo(dst, c, src)
	default:
		k := e.Value(x1, x2)
		c := 2 * e.p.Lambda * k
		if wrt == First {
			c = -c
		}
		floats.SubTo(dst, x1, x2)
		floats.Scale(c, dst)
	}

	return dst
}

// Gradient is the allocating form of GradientTo.
func (e *Engine) Gradient(x1, x2 []float64, wrt Arg) []float64 {
	return e.GradientTo(make([]float64, e.dim), x1, x2, wrt)
}

// DirectionalSecond returns u·∂k/∂x2 (x1, x2) without materializing the
// gradient. It is the building block of the G/Gs blocks and of the beta
// term of the decision function.
// Complexity: O(dim).
func (e *Engine) DirectionalSecond(x1, x2, u []float64) float64 {
	switch e.p.Kind {
	case Poly:
		s := floats.Dot(x1, x2) + 1

		return e.p.Lambda * math.Pow(s, e.p.Lambda-1) * floats.Dot(u, x1)
	default:
		var (
			d2, du float64
			i      int
		)
		for i = 0; i < len(x1); i++ { // single pass: ‖d‖² and u·d together
			d := x1[i] - x2[i]
			d2 += d * d
			du += u[i] * d
		}

		return 2 * e.p.Lambda * math.Exp(-e.p.Lambda*d2) * du
	}
}

// sqDist returns ‖a − b‖² in one pass.
func sqDist(a, b []float64) float64 {
	var (
		s float64
		i int
	)
	for i = 0; i < len(a); i++ {
		d := a[i] - b[i]
		s += d * d
	}

	return s
}

// checkPair validates that both operands are non-empty and of equal length.
func checkPair(fn string, x1, x2 []float64) error {
	if len(x1) == 0 || len(x2) == 0 {
		return kernelErrorf(fn, ErrEmptyVector)
	}
	if len(x1) != len(x2) {
		return kernelErrorf(fn, ErrDimensionMismatch)
	}

	return nil
}

// Value returns k(x1, x2) for the configuration p.
//
// Errors: ErrEmptyVector, ErrDimensionMismatch, and Params.Validate errors.
// Complexity: O(dim).
func Value(x1, x2 []float64, p Params) (float64, error) {
	if err := checkPair("Value", x1, x2); err != nil {
		return 0, err
	}
	e, err := NewEngine(p, len(x1))
	if err != nil {
		return 0, err
	}

	return e.Value(x1, x2), nil
}

// Gradient returns the analytic gradient of k with respect to x1 or x2.
// The result has the same length as the inputs.
//
// Errors: as Value.
// Complexity: O(dim).
func Gradient(x1, x2 []float64, p Params, wrt Arg) ([]float64, error) {
	if err := checkPair("Gradient", x1, x2); err != nil {
		return nil, err
	}
	e, err := NewEngine(p, len(x1))
	if err != nil {
		return nil, err
	}

	return e.Gradient(x1, x2, wrt), nil
}
