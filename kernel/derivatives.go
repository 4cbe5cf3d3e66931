// SPDX-License-Identifier: MIT

// Package kernel - second derivatives.
//
// Two second-order objects are exposed:
//
//	Hessian(x1, x2)       H_ab = ∂²k / ∂x1_a ∂x1_b
//	MixedHessian(x1, x2)  M_ab = ∂²k / ∂x1_a ∂x2_b
//
// The modulation matrix and the classifier gradient only ever need M in
// contracted form (uᵀ M v or M v), so the Engine offers MixedQuad and
// MixedApplyTo which never allocate the dim×dim matrix.
//
// Closed forms (d = x1 − x2, s = x1·x2 + 1):
//
//	RBF:  H = k (4λ² d dᵀ − 2λ I)          M = k (2λ I − 4λ² d dᵀ) = −H
//	Poly: H = c2 x2 x2ᵀ                     M = c2 x2 x1ᵀ + c1 I
//	      c1 = λ s^(λ−1),  c2 = λ(λ−1) s^(λ−2)  (c2 = 0 for λ = 1)

package kernel

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// polyCoeffs returns (c1, c2) of the polynomial kernel at s = x1·x2 + 1.
func (e *Engine) polyCoeffs(x1, x2 []float64) (c1, c2 float64) {
	s := floats.Dot(x1, x2) + 1
	lam := e.p.Lambda
	c1 = lam * math.Pow(s, lam-1)
	if lam != 1 { // λ(λ−1) vanishes; avoid 0·s^(−1) when s == 0
		c2 = lam * (lam - 1) * math.Pow(s, lam-2)
	}

	return c1, c2
}

// Hessian returns ∂²k/∂x1² as a dim×dim symmetric matrix.
// Complexity: O(dim²) time and space.
func (e *Engine) Hessian(x1, x2 []float64) *mat.SymDense {
	n := e.dim
	h := mat.NewSymDense(n, nil)

	var a, b int
	switch e.p.Kind {
	case Poly:
		_, c2 := e.polyCoeffs(x1, x2)
		for a = 0; a < n; a++ {
			for b = a; b < n; b++ {
				h.SetSym(a, b, c2*x2[a]*x2[b])
			}
		}
	default:
		k := e.Value(x1, x2)
		lam := e.p.Lambda
		for a = 0; a < n; a++ {
			da := x1[a] - x2[a]
			for b = a; b < n; b++ {
				v := 4 * lam * lam * da * (x1[b] - x2[b])
				if a == b {
					v -= 2 * lam
				}
				h.SetSym(a, b, k*v)
			}
		}
	}

	return h
}

// MixedHessian returns ∂²k/∂x1∂x2 as a dim×dim matrix (row a = x1_a,
// column b = x2_b). It is symmetric for RBF but not in general for Poly;
// MixedHessian(x2, x1) equals its transpose.
// Complexity: O(dim²) time and space.
func (e *Engine) MixedHessian(x1, x2 []float64) *mat.Dense {
	n := e.dim
	m := mat.NewDense(n, n, nil)

	var a, b int
	switch e.p.Kind {
	case Poly:
		c1, c2 := e.polyCoeffs(x1, x2)
		for a = 0; a < n; a++ {
			for b = 0; b < n; b++ {
				v := c2 * x2[a] * x1[b]
				if a == b {
					v += c1
				}
				m.Set(a, b, v)
			}
		}
	default:
		k := e.Value(x1, x2)
		lam := e.p.Lambda
		for a = 0; a < n; a++ {
			da := x1[a] - x2[a]
			for b = 0; b < n; b++ {
				v := -4 * lam * lam * da * (x1[b] - x2[b])
				if a == b {
					v += 2 * lam
				}
				m.Set(a, b, k*v)
			}
		}
	}

	return m
}

// MixedQuad returns uᵀ M(x1, x2) v without forming M.
// Complexity: O(dim), no allocations.
func (e *Engine) MixedQuad(u, x1, x2, v []float64) float64 {
	switch e.p.Kind {
	case Poly:
		c1, c2 := e.polyCoeffs(x1, x2)

		return c2*floats.Dot(u, x2)*floats.Dot(x1, v) + c1*floats.Dot(u, v)
	default:
		var (
			d2, ud, dv, uv float64
			i              int
		)
		for i = 0; i < len(x1); i++ {
			d := x1[i] - x2[i]
			d2 += d * d
			ud += u[i] * d
			dv += d * v[i]
			uv += u[i] * v[i]
		}
		lam := e.p.Lambda

		return math.Exp(-lam*d2) * (2*lam*uv - 4*lam*lam*ud*dv)
	}
}

// MixedApplyTo writes M(x1, x2)·v into dst and returns it.
// dst must not alias v.
// Complexity: O(dim), no allocations.
func (e *Engine) MixedApplyTo(dst, x1, x2, v []float64) []float64 {
	switch e.p.Kind {
	case Poly:
		c1, c2 := e.polyCoeffs(x1, x2)
		t := c2 * floats.Dot(x1, v)
		floats.ScaleTo(dst, c1, v)
		floats.AddScaled(dst, t, x2)
	default:
		lam := e.p.Lambda
		k := e.Value(x1, x2)
		var (
			dv float64
			i  int
		)
		for i = 0; i < len(x1); i++ {
			dv += (x1[i] - x2[i]) * v[i]
		}
		for i = 0; i < len(x1); i++ {
			dst[i] = k * (2*lam*v[i] - 4*lam*lam*(x1[i]-x2[i])*dv)
		}
	}

	return dst
}

// Hessian returns ∂²k/∂x1² for the configuration p.
//
// Errors: ErrEmptyVector, ErrDimensionMismatch, Params.Validate errors.
// Complexity: O(dim²).
func Hessian(x1, x2 []float64, p Params) (*mat.SymDense, error) {
	if err := checkPair("Hessian", x1, x2); err != nil {
		return nil, err
	}
	e, err := NewEngine(p, len(x1))
	if err != nil {
		return nil, err
	}

	return e.Hessian(x1, x2), nil
}

// MixedHessian returns ∂²k/∂x1∂x2 for the configuration p.
//
// Errors: as Hessian.
// Complexity: O(dim²).
func MixedHessian(x1, x2 []float64, p Params) (*mat.Dense, error) {
	if err := checkPair("MixedHessian", x1, x2); err != nil {
		return nil, err
	}
	e, err := NewEngine(p, len(x1))
	if err != nil {
		return nil, err
	}

	return e.MixedHessian(x1, x2), nil
}
