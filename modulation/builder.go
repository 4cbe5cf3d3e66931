// SPDX-License-Identifier: MIT

package modulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/asvm/kernel"
	"github.com/katalvlaran/asvm/matrix"
	"github.com/katalvlaran/asvm/trajectory"
)

// Group identifies which variable block an index of v belongs to.
type Group int

const (
	Alpha Group = iota
	Beta
	Gamma
)

// String returns the lower-case group name.
func (g Group) String() string {
	switch g {
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Gamma:
		return "gamma"
	default:
		return fmt.Sprintf("Group(%d)", int(g))
	}
}

// CoefficientMatrix is the assembled QP data. Q has order M+P+N; indices
// [0,M) are α, [M,M+P) are β and [M+P,M+P+N) are γ.
// It is immutable once returned by Build.
type CoefficientMatrix struct {
	Q      *mat.SymDense
	Labels []float64 // classification labels, length M
	M      int
	P      int
	N      int
	Set    *trajectory.TrainingSet
	Kernel kernel.Params
}

// Dim returns M+P+N.
func (cm *CoefficientMatrix) Dim() int { return cm.M + cm.P + cm.N }

// Locate maps a global index to its group and the index within the group.
func (cm *CoefficientMatrix) Locate(r int) (Group, int) {
	switch {
	case r < cm.M:
		return Alpha, r
	case r < cm.M+cm.P:
		return Beta, r - cm.M
	default:
		return Gamma, r - cm.M - cm.P
	}
}

// Build prepares ds for the target class and assembles the coefficient matrix.
//
// Errors: trajectory errors from Prepare (ErrShortTrajectory,
// ErrDimensionMismatch, ErrNoClasses, ErrTargetOutOfRange, ErrSingleClass),
// kernel parameter errors, ctx errors, ErrInvalidMatrix.
func Build(ctx context.Context, ds *trajectory.Dataset, target int, kp kernel.Params, opts ...Option) (*CoefficientMatrix, error) {
	ts, err := trajectory.Prepare(ds, target)
	if err != nil {
		return nil, fmt.Errorf("modulation.Build: %w", err)
	}

	return BuildFromSet(ctx, ts, kp, opts...)
}

// cellSource holds the per-index operands of the cell function.
type cellSource struct {
	eng    *kernel.Engine
	m, p   int
	y      []float64   // labels, M
	x      [][]float64 // classification coords, M
	z      [][]float64 // Lyapunov coords, P
	v      [][]float64 // Lyapunov velocities, P
	anchor []float64
	units  [][]float64 // e_d, N
}

// cell returns Q[r,c] for r <= c.
func (s *cellSource) cell(r, c int) float64 {
	mp := s.m + s.p
	switch {
	case c < s.m: // K
		return s.y[r] * s.y[c] * s.eng.Value(s.x[r], s.x[c])
	case r < s.m && c < mp: // G
		j := c - s.m
		return s.y[r] * s.eng.DirectionalSecond(s.x[r], s.z[j], s.v[j])
	case r < s.m: // Gs
		return -s.y[r] * s.eng.DirectionalSecond(s.x[r], s.anchor, s.units[c-mp])
	case c < mp: // H
		j, l := r-s.m, c-s.m
		return s.eng.MixedQuad(s.v[j], s.z[j], s.z[l], s.v[l])
	case r < mp: // Hs
		j := r - s.m
		return -s.eng.MixedQuad(s.v[j], s.z[j], s.anchor, s.units[c-mp])
	default: // Hss
		d, e := r-mp, c-mp
		return s.eng.MixedQuad(s.units[d], s.anchor, s.anchor, s.units[e])
	}
}

// BuildFromSet assembles the coefficient matrix of an already prepared set.
//
// Implementation:
//   - Stage 1: validate the kernel against the set dimension.
//   - Stage 2: split rows into chunks; an errgroup limited to the worker
//     count fills the upper triangle of each chunk. Distinct rows write
//     distinct cells, so tasks share no state.
//   - Stage 3: run matrix.ValidateCoefficient on the result.
//
// Determinism: every cell is a pure function of (r, c); the worker count only
// changes scheduling.
// Complexity: O((M+P+N)² · dim) time, O((M+P+N)²) space.
func BuildFromSet(ctx context.Context, ts *trajectory.TrainingSet, kp kernel.Params, opts ...Option) (*CoefficientMatrix, error) {
	if ts == nil {
		return nil, fmt.Errorf("modulation.BuildFromSet: %w", ErrNilSet)
	}
	o := gatherOptions(opts...)

	eng, err := kernel.NewEngine(kp, ts.Dim)
	if err != nil {
		return nil, fmt.Errorf("modulation.BuildFromSet: %w", err)
	}

	m, p, n := ts.Sizes()
	src := &cellSource{
		eng:    eng,
		m:      m,
		p:      p,
		y:      ts.Labels(),
		x:      ts.Coords(),
		z:      make([][]float64, p),
		v:      make([][]float64, p),
		anchor: ts.Anchor,
		units:  make([][]float64, n),
	}
	for j, lp := range ts.Lyapunov {
		src.z[j], src.v[j] = lp.Coord, lp.Velocity
	}
	for d := 0; d < n; d++ {
		src.units[d] = make([]float64, n)
		src.units[d][d] = 1
	}

	start := time.Now()
	dim := m + p + n
	q := mat.NewSymDense(dim, nil)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for lo := 0; lo < dim; lo += o.chunkRows {
		lo, hi := lo, min(lo+o.chunkRows, dim)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var r, c int
			for r = lo; r < hi; r++ {
				for c = r; c < dim; c++ {
					q.SetSym(r, c, src.cell(r, c))
				}
			}

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("modulation.BuildFromSet: %w", err)
	}

	if err = matrix.ValidateCoefficient(q, o.validate...); err != nil {
		return nil, fmt.Errorf("modulation.BuildFromSet: %w", errors.Join(ErrInvalidMatrix, err))
	}

	o.logger.Debug("coefficient matrix assembled",
		zap.Int("alpha", m),
		zap.Int("beta", p),
		zap.Int("gamma", n),
		zap.Int("workers", o.workers),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &CoefficientMatrix{
		Q:      q,
		Labels: src.y,
		M:      m,
		P:      p,
		N:      n,
		Set:    ts,
		Kernel: kp,
	}, nil
}
