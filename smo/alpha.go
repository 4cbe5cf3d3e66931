// SPDX-License-Identifier: MIT

package smo

import (
	"math"

	"github.com/katalvlaran/asvm/modulation"
)

// examineAlpha checks α_{i2} against the KKT conditions and, on violation,
// tries partners in Platt's order: the extreme cached error, every interior
// index, every bound index. Scans start at i2+1 and wrap around.
// Returns 1 if a step was accepted.
func (s *Solver) examineAlpha(i2 int) int {
	a2 := s.v[i2]
	e2 := s.alphaError(i2)
	r2 := e2 * s.y[i2]
	tol := s.o.classTol
	if !((r2 < -tol && a2 < s.o.c) || (r2 > tol && a2 > 0)) {
		return 0
	}

	if s.nInterior > 1 {
		i1 := s.iMax
		if math.Abs(s.errA[s.iMin]-e2) > math.Abs(s.errA[s.iMax]-e2) {
			i1 = s.iMin
		}
		if s.takeStep(i1, i2) {
			return 1
		}
	}

	var t, i1 int
	for t = 1; t <= s.m; t++ {
		i1 = (i2 + t) % s.m
		if s.interiorAlpha(i1) && s.takeStep(i1, i2) {
			return 1
		}
	}
	for t = 1; t <= s.m; t++ {
		i1 = (i2 + t) % s.m
		if !s.interiorAlpha(i1) && s.takeStep(i1, i2) {
			return 1
		}
	}

	return 0
}

// takeStep optimizes the pair (α_{i1}, α_{i2}) along Σ y·α = const.
//
// Implementation:
//   - Stage 1: feasible segment [L, H] of α2; reject L == H.
//   - Stage 2: curvature eta = k11 + k22 − 2k12 on raw kernel values
//     (k_ij = y_i y_j Q_ij); reject eta ≤ 0.
//   - Stage 3: α2' = clip(α2 + y2(E1 − E2)/eta, L, H); reject a change below
//     the rounding noise of α2.
//   - Stage 4: α1' = α1 + s(α2 − α2'), pushing any rounding excursion of α1'
//     out of [0, C] back onto α2.
//   - Stage 5: rank-one cache update from rows i1 and i2.
func (s *Solver) takeStep(i1, i2 int) bool {
	if i1 == i2 {
		return false
	}
	c := s.o.c
	a1, a2 := s.v[i1], s.v[i2]
	y1, y2 := s.y[i1], s.y[i2]
	e1, e2 := s.alphaError(i1), s.alphaError(i2)
	sgn := y1 * y2

	var lo, hi float64
	if sgn < 0 {
		lo, hi = math.Max(0, a2-a1), math.Min(c, c+a2-a1)
	} else {
		lo, hi = math.Max(0, a2+a1-c), math.Min(c, a2+a1)
	}
	if lo >= hi {
		s.steps.Rejected++

		return false
	}

	k11, k22 := s.q.Diag(i1), s.q.Diag(i2)
	k12 := sgn * s.q.Get(i1, i2)
	eta := k11 + k22 - 2*k12
	if !(eta > 0) {
		s.steps.Rejected++
		s.steps.Degenerate++

		return false
	}

	a2n := clamp(a2+y2*(e1-e2)/eta, lo, hi)
	if !isFinite(a2n) || math.Abs(a2n-a2) < stepNoise*(a2+a2n+stepNoise) {
		s.steps.Rejected++

		return false
	}

	a1n := a1 + sgn*(a2-a2n)
	if a1n < 0 {
		a2n += sgn * a1n
		a1n = 0
	} else if a1n > c {
		a2n += sgn * (a1n - c)
		a1n = c
	}
	a2n = clamp(a2n, 0, c)

	d1, d2 := a1n-a1, a2n-a2
	s.v[i1], s.v[i2] = a1n, a2n
	s.errA[i1], s.errA[i2] = e1, e2 // exact; corrected below like every interior entry
	s.applyPair(i1, i2, d1, d2)
	s.steps.Alpha++

	s.notify(StepEvent{
		Group:      modulation.Alpha,
		Index:      i2,
		Old:        a2,
		New:        a2n,
		Partner:    i1,
		PartnerOld: a1,
		PartnerNew: a1n,
	})

	return true
}

// applyPair propagates (Δα1, Δα2) to the caches:
//
//	ΔE_k = y_k (Q_k,i1 Δα1 + Q_k,i2 Δα2)   interior α (and i1, i2)
//	Δg_l = Q_{M+l},i1 Δα1 + Q_{M+l},i2 Δα2 interior β
//
// and refreshes the extreme-error indices in the same pass.
func (s *Solver) applyPair(i1, i2 int, d1, d2 float64) {
	r1 := s.q.RowTo(s.row1, i1)
	r2 := s.q.RowTo(s.row2, i2)

	s.resetExtremes()
	var k, l int
	for k = 0; k < s.m; k++ {
		in := s.interiorAlpha(k)
		if in || k == i1 || k == i2 {
			s.errA[k] += s.y[k] * (d1*r1[k] + d2*r2[k])
		}
		if in {
			s.track(k)
		}
	}
	for l = 0; l < s.p; l++ {
		if s.interiorBeta(l) {
			s.errB[l] += d1*r1[s.m+l] + d2*r2[s.m+l]
		}
	}
}
