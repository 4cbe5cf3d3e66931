// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/asvm/kernel"
	"github.com/katalvlaran/asvm/modulation"
	"github.com/katalvlaran/asvm/smo"
)

// DefaultRelTol is the default relative filter for both α and β.
const DefaultRelTol = 1e-8

// Tolerances are the relative support filters: a coefficient survives if it
// exceeds max(group)·Rel.
type Tolerances struct {
	AlphaRel float64
	BetaRel  float64
}

// DefaultTolerances returns DefaultRelTol for both groups.
func DefaultTolerances() Tolerances {
	return Tolerances{AlphaRel: DefaultRelTol, BetaRel: DefaultRelTol}
}

// Validate reports ErrBadTolerance unless both values lie in [0, 1].
func (t Tolerances) Validate() error {
	if !(t.AlphaRel >= 0 && t.AlphaRel <= 1) || !(t.BetaRel >= 0 && t.BetaRel <= 1) {
		return fmt.Errorf("model: alpha %g beta %g: %w", t.AlphaRel, t.BetaRel, ErrBadTolerance)
	}

	return nil
}

// Classifier is the sparse trained model.
type Classifier struct {
	kp   kernel.Params
	eng  *kernel.Engine
	dim  int
	bias float64

	anchor []float64
	gamma  []float64

	alpha  []float64
	labels []float64
	svA    [][]float64

	beta []float64
	svB  [][]float64
	velB [][]float64
}

// FromSolution filters sol against the training set behind cm and returns
// the resulting Classifier. The bias is recomputed as the mean of
// y_i − raw(x_i) over the surviving α points, so it is consistent with the
// filtered model rather than with the full solution.
//
// Errors: ErrShape, ErrBadTolerance, ErrNoSupportVectors (nil Classifier).
// Complexity: O((M+P)·S·dim) for S surviving points.
func FromSolution(sol smo.Solution, cm *modulation.CoefficientMatrix, tol Tolerances) (*Classifier, error) {
	if cm == nil || cm.Set == nil {
		return nil, fmt.Errorf("model.FromSolution: nil coefficient matrix: %w", ErrShape)
	}
	if len(sol.Alpha) != cm.M || len(sol.Beta) != cm.P || len(sol.Gamma) != cm.N {
		return nil, fmt.Errorf("model.FromSolution: got (%d,%d,%d) want (%d,%d,%d): %w",
			len(sol.Alpha), len(sol.Beta), len(sol.Gamma), cm.M, cm.P, cm.N, ErrShape)
	}
	if err := tol.Validate(); err != nil {
		return nil, err
	}
	set := cm.Set
	eng, err := kernel.NewEngine(cm.Kernel, set.Dim)
	if err != nil {
		return nil, err
	}

	c := &Classifier{
		kp:     cm.Kernel,
		eng:    eng,
		dim:    set.Dim,
		anchor: append([]float64(nil), set.Anchor...),
		gamma:  append([]float64(nil), sol.Gamma...),
	}

	cutA := maxOf(sol.Alpha) * tol.AlphaRel
	for i, a := range sol.Alpha {
		if a > cutA {
			tp := set.Classification[i]
			c.alpha = append(c.alpha, a)
			c.labels = append(c.labels, tp.Label)
			c.svA = append(c.svA, append([]float64(nil), tp.Coord...))
		}
	}
	if len(c.alpha) == 0 {
		return nil, ErrNoSupportVectors
	}

	cutB := maxOf(sol.Beta) * tol.BetaRel
	for j, b := range sol.Beta {
		if b > cutB {
			tp := set.Lyapunov[j]
			c.beta = append(c.beta, b)
			c.svB = append(c.svB, append([]float64(nil), tp.Coord...))
			c.velB = append(c.velB, append([]float64(nil), tp.Velocity...))
		}
	}

	var sum float64
	for i, x := range c.svA {
		sum += c.labels[i] - c.raw(x)
	}
	c.bias = sum / float64(len(c.svA))

	return c, nil
}

func maxOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}

	return floats.Max(v)
}

// Kernel returns the kernel configuration.
func (c *Classifier) Kernel() kernel.Params { return c.kp }

// Dim returns the input dimension.
func (c *Classifier) Dim() int { return c.dim }

// Bias returns b.
func (c *Classifier) Bias() float64 { return c.bias }

// NumAlpha returns the number of α support points.
func (c *Classifier) NumAlpha() int { return len(c.alpha) }

// NumBeta returns the number of β support points.
func (c *Classifier) NumBeta() int { return len(c.beta) }

// Anchor returns a copy of the target anchor x*.
func (c *Classifier) Anchor() []float64 { return append([]float64(nil), c.anchor...) }

// raw is f(x) − b.
func (c *Classifier) raw(x []float64) float64 {
	var f float64
	for i, sv := range c.svA {
		f += c.labels[i] * c.alpha[i] * c.eng.Value(x, sv)
	}
	for j, z := range c.svB {
		f += c.beta[j] * c.eng.DirectionalSecond(x, z, c.velB[j])
	}
	f -= c.eng.DirectionalSecond(x, c.anchor, c.gamma)

	return f
}

func (c *Classifier) check(fn string, x []float64) error {
	if len(x) != c.dim {
		return fmt.Errorf("model.%s: len %d want %d: %w", fn, len(x), c.dim, ErrDimensionMismatch)
	}

	return nil
}

// Value returns f(x).
//
// Errors: ErrDimensionMismatch.
// Complexity: O((nAlpha+nBeta+1)·dim).
func (c *Classifier) Value(x []float64) (float64, error) {
	if err := c.check("Value", x); err != nil {
		return 0, err
	}

	return c.bias + c.raw(x), nil
}

// Gradient returns ∇f(x):
//
//	Σ y_i α_i ∂₁k(x, x_i) + Σ β_j M(x, z_j) v_j − M(x, x*) γ
//
// with M the mixed second derivative ∂²k/∂x1∂x2.
//
// Errors: ErrDimensionMismatch.
// Complexity: O((nAlpha+nBeta+1)·dim).
func (c *Classifier) Gradient(x []float64) ([]float64, error) {
	if err := c.check("Gradient", x); err != nil {
		return nil, err
	}
	out := make([]float64, c.dim)
	tmp := make([]float64, c.dim)

	for i, sv := range c.svA {
		c.eng.GradientTo(tmp, x, sv, kernel.First)
		floats.AddScaled(out, c.labels[i]*c.alpha[i], tmp)
	}
	for j, z := range c.svB {
		c.eng.MixedApplyTo(tmp, x, z, c.velB[j])
		floats.AddScaled(out, c.beta[j], tmp)
	}
	c.eng.MixedApplyTo(tmp, x, c.anchor, c.gamma)
	floats.Sub(out, tmp)

	return out, nil
}

// Classify returns +1 when f(x) ≥ 0 and −1 otherwise.
//
// Errors: ErrDimensionMismatch.
func (c *Classifier) Classify(x []float64) (float64, error) {
	f, err := c.Value(x)
	if err != nil {
		return 0, err
	}

	if f >= 0 {
		return 1, nil
	}

	return -1, nil
}
