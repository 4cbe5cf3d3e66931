// SPDX-License-Identifier: MIT

package smo

import "math"

// updateBias recomputes b and shifts the interior α caches by the change.
//
// With interior α present, b = mean(y_i − F_i) over them; since the cache
// holds E_i = F_i + b − y_i this is b − mean(E_i). Otherwise b is taken from
// the bound-derived interval (see biasFrom).
func (s *Solver) updateBias() {
	old := s.bias

	var (
		sum float64
		cnt int
		i   int
	)
	for i = 0; i < s.m; i++ {
		if s.interiorAlpha(i) {
			sum += s.errA[i]
			cnt++
		}
	}

	var nb float64
	if cnt > 0 {
		nb = old - sum/float64(cnt)
	} else {
		nb = s.biasFrom(func(i int) float64 { return s.y[i] * s.qvAt(i) }, old)
	}

	delta := nb - old
	s.bias = nb
	if delta == 0 {
		return
	}
	for i = 0; i < s.m; i++ {
		if s.interiorAlpha(i) {
			s.errA[i] += delta
		}
	}
}

// biasFrom computes b from the margins F_i = f(x_i) − b.
//
// Interior α pin y_i(F_i + b) = 1, so b is the mean of y_i − F_i over them.
// Without interior α every bound α only bounds b:
//
//	y=+1, α=0 or y=−1, α=C  →  b ≥ y_i − F_i
//	y=+1, α=C or y=−1, α=0  →  b ≤ y_i − F_i
//
// and b is the midpoint of the tightest interval; a one-sided interval gives
// its finite end and an empty one gives fallback.
func (s *Solver) biasFrom(margin func(int) float64, fallback float64) float64 {
	var (
		sum    float64
		cnt    int
		lb, ub = math.Inf(-1), math.Inf(1)
		i      int
	)
	for i = 0; i < s.m; i++ {
		a, y := s.v[i], s.y[i]
		val := y - margin(i)
		switch {
		case a > 0 && a < s.o.c:
			sum += val
			cnt++
		case (y > 0) == (a <= 0):
			lb = math.Max(lb, val)
		default:
			ub = math.Min(ub, val)
		}
	}

	switch {
	case cnt > 0:
		return sum / float64(cnt)
	case !math.IsInf(lb, 0) && !math.IsInf(ub, 0):
		return (lb + ub) / 2
	case !math.IsInf(lb, 0):
		return lb
	case !math.IsInf(ub, 0):
		return ub
	default:
		return fallback
	}
}
