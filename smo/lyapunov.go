// SPDX-License-Identifier: MIT

package smo

import (
	"math"

	"github.com/katalvlaran/asvm/modulation"
)

// examineBeta takes a clamped Newton step on β_j when it violates
// (g < −tol ∧ β < C) ∨ (g > tol ∧ β > 0), g = (Qv)_{M+j}.
// Returns 1 if a step was accepted.
func (s *Solver) examineBeta(j int) int {
	r := s.m + j
	b := s.v[r]
	g := s.betaGrad(j)
	tol := s.o.lyapTol
	if !((g < -tol && b < s.o.c) || (g > tol && b > 0)) {
		return 0
	}

	h := s.q.Diag(r)
	if !(h > 0) {
		s.steps.Rejected++
		s.steps.Degenerate++

		return 0
	}
	bn := clamp(b-g/h, 0, s.o.c)
	if math.Abs(bn-b) <= stepNoise*(b+bn+stepNoise) {
		s.steps.Rejected++

		return 0
	}

	s.v[r] = bn
	s.errB[j] = g
	s.propagate(r, bn-b)
	s.steps.Beta++
	s.notify(StepEvent{Group: modulation.Beta, Index: j, Old: b, New: bn, Partner: -1})

	return 1
}

// examineGamma takes an unconstrained Newton step on γ_d when
// |(Qv)_{M+P+d}| exceeds the Lyapunov tolerance. Returns 1 if accepted.
func (s *Solver) examineGamma(d int) int {
	r := s.m + s.p + d
	c := s.v[r]
	g := s.qvAt(r)
	if math.Abs(g) <= s.o.lyapTol {
		return 0
	}

	h := s.q.Diag(r)
	if !(h > 0) {
		s.steps.Rejected++
		s.steps.Degenerate++

		return 0
	}
	cn := c - g/h
	if !isFinite(cn) || math.Abs(cn-c) <= stepNoise*(math.Abs(c)+math.Abs(cn)+stepNoise) {
		s.steps.Rejected++

		return 0
	}

	s.v[r] = cn
	s.propagate(r, cn-c)
	s.steps.Gamma++
	s.notify(StepEvent{Group: modulation.Gamma, Index: d, Old: c, New: cn, Partner: -1})

	return 1
}

// propagate applies a single-coordinate change Δ of v_r to the caches:
//
//	ΔE_k = y_k Q_k,r Δ   interior α
//	Δg_l = Q_{M+l},r Δ   interior β
//
// and refreshes the extreme-error indices.
func (s *Solver) propagate(r int, delta float64) {
	row := s.q.RowTo(s.row1, r)

	s.resetExtremes()
	var k, l int
	for k = 0; k < s.m; k++ {
		if s.interiorAlpha(k) {
			s.errA[k] += s.y[k] * row[k] * delta
			s.track(k)
		}
	}
	for l = 0; l < s.p; l++ {
		if s.interiorBeta(l) {
			s.errB[l] += row[s.m+l] * delta
		}
	}
}
