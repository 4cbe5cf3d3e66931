// SPDX-License-Identifier: MIT

package csvc

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/asvm/kernel"
	"github.com/katalvlaran/asvm/matrix"
)

// Provider trains a C-SVC with a fixed kernel and options.
// A Provider is immutable and safe for concurrent use.
type Provider struct {
	kp kernel.Params
	o  options
}

// Model is a trained binary C-SVC.
type Model struct {
	// Alpha holds the dual coefficients, one per training point.
	Alpha []float64
	// Bias is b in f(x) = Σ α_i y_i k(x_i, x) + b (libsvm's −rho).
	Bias float64
	// Iterations is the number of pair updates performed.
	Iterations int
	// Converged reports whether the maximal violating pair fell below eps.
	Converged bool

	eng    *kernel.Engine
	points [][]float64
	labels []float64
}

// NewProvider validates kp and returns a Provider.
func NewProvider(kp kernel.Params, opts ...Option) (*Provider, error) {
	if err := kp.Validate(); err != nil {
		return nil, err
	}

	return &Provider{kp: kp, o: gatherOptions(opts...)}, nil
}

// Classify trains on (points, labels) and returns the dual coefficients.
// It satisfies smo.InitialGuessProvider.
func (p *Provider) Classify(ctx context.Context, points [][]float64, labels []float64) ([]float64, error) {
	m, err := p.Train(ctx, points, labels)
	if err != nil {
		return nil, err
	}

	return m.Alpha, nil
}

// Train runs the decomposition solver to eps or MaxIter.
// Running out of iterations is not an error: the returned Model is feasible
// and carries Converged == false.
//
// Errors: ErrEmpty, ErrLabels, ErrDimensionMismatch, and ctx.Err().
// Complexity: O(l²·dim) to build Q, then O(l) per iteration.
func (p *Provider) Train(ctx context.Context, points [][]float64, labels []float64) (*Model, error) {
	if err := checkInput(points, labels); err != nil {
		return nil, err
	}
	eng, err := kernel.NewEngine(p.kp, len(points[0]))
	if err != nil {
		return nil, err
	}

	l := len(points)
	qs := mat.NewSymDense(l, nil)
	var i, j int
	for i = 0; i < l; i++ {
		for j = i; j < l; j++ {
			qs.SetSym(i, j, labels[i]*labels[j]*eng.Value(points[i], points[j]))
		}
	}
	q, err := matrix.NewSymmetric(qs)
	if err != nil {
		return nil, err
	}

	s := &state{
		q:     q,
		y:     labels,
		c:     p.o.c,
		alpha: make([]float64, l),
		grad:  make([]float64, l),
		rowI:  make([]float64, l),
		rowJ:  make([]float64, l),
	}
	for i = range s.grad {
		s.grad[i] = -1
	}

	iter, converged, err := s.run(ctx, p.o.eps, p.o.maxIter)
	if err != nil {
		return nil, err
	}
	if !converged {
		p.o.logger.Warn("csvc reached iteration cap",
			zap.Int("max_iter", p.o.maxIter),
			zap.Int("points", l))
	}

	model := &Model{
		Alpha:      s.alpha,
		Bias:       -s.rho(),
		Iterations: iter,
		Converged:  converged,
		eng:        eng,
		points:     points,
		labels:     labels,
	}
	p.o.logger.Debug("csvc trained",
		zap.Int("points", l),
		zap.Int("iterations", iter),
		zap.Int("support_vectors", model.NumSupport()),
		zap.Float64("bias", model.Bias))

	return model, nil
}

// Decision returns f(x). x must have the training dimension.
// Complexity: O(l·dim).
func (m *Model) Decision(x []float64) float64 {
	f := m.Bias
	for i, a := range m.Alpha {
		if a == 0 {
			continue
		}
		f += a * m.labels[i] * m.eng.Value(m.points[i], x)
	}

	return f
}

// NumSupport counts the points with a non-zero coefficient.
func (m *Model) NumSupport() int {
	n := 0
	for _, a := range m.Alpha {
		if a > 0 {
			n++
		}
	}

	return n
}

func checkInput(points [][]float64, labels []float64) error {
	if len(points) == 0 || len(points[0]) == 0 {
		return ErrEmpty
	}
	if len(labels) != len(points) {
		return fmt.Errorf("csvc: %d labels for %d points: %w", len(labels), len(points), ErrLabels)
	}
	var pos, neg bool
	dim := len(points[0])
	for i, x := range points {
		if len(x) != dim {
			return fmt.Errorf("csvc: point %d has %d coordinates, want %d: %w", i, len(x), dim, ErrDimensionMismatch)
		}
		switch labels[i] {
		case 1:
			pos = true
		case -1:
			neg = true
		default:
			return fmt.Errorf("csvc: label %d is %g: %w", i, labels[i], ErrLabels)
		}
	}
	if !pos || !neg {
		return ErrLabels
	}

	return nil
}

// state is the working set of one training run.
type state struct {
	q     *matrix.Symmetric
	y     []float64
	c     float64
	alpha []float64
	grad  []float64 // ∇ = Qα − e
	rowI  []float64
	rowJ  []float64
}

func (s *state) upper(i int) bool { return s.alpha[i] >= s.c }
func (s *state) lower(i int) bool { return s.alpha[i] <= 0 }

// run iterates until the working set selection reports optimality.
func (s *state) run(ctx context.Context, eps float64, maxIter int) (int, bool, error) {
	for iter := 0; iter < maxIter; iter++ {
		if iter%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return iter, false, err
			}
		}
		i, j, ok := s.selectWorkingSet(eps)
		if !ok {
			return iter, true, nil
		}
		s.update(i, j)
	}

	return maxIter, false, nil
}

// selectWorkingSet picks i by maximal violation in I_up and j by the
// second-order gain among I_low. ok is false at eps-optimality.
func (s *state) selectWorkingSet(eps float64) (int, int, bool) {
	gMax, gMax2 := math.Inf(-1), math.Inf(-1)
	iSel, jSel := -1, -1
	l := len(s.alpha)

	var t int
	for t = 0; t < l; t++ {
		if s.y[t] > 0 {
			if !s.upper(t) && -s.grad[t] >= gMax {
				gMax, iSel = -s.grad[t], t
			}
		} else if !s.lower(t) && s.grad[t] >= gMax {
			gMax, iSel = s.grad[t], t
		}
	}
	if iSel < 0 {
		return -1, -1, false
	}

	s.q.RowTo(s.rowI, iSel)
	qii := s.q.Diag(iSel)
	objMin := math.Inf(1)
	for t = 0; t < l; t++ {
		var gradDiff, quad float64
		if s.y[t] > 0 {
			if s.lower(t) {
				continue
			}
			gradDiff = gMax + s.grad[t]
			if s.grad[t] >= gMax2 {
				gMax2 = s.grad[t]
			}
			if gradDiff <= 0 {
				continue
			}
			quad = qii + s.q.Diag(t) - 2*s.y[iSel]*s.rowI[t]
		} else {
			if s.upper(t) {
				continue
			}
			gradDiff = gMax - s.grad[t]
			if -s.grad[t] >= gMax2 {
				gMax2 = -s.grad[t]
			}
			if gradDiff <= 0 {
				continue
			}
			quad = qii + s.q.Diag(t) + 2*s.y[iSel]*s.rowI[t]
		}
		if quad <= 0 {
			quad = tau
		}
		if obj := -gradDiff * gradDiff / quad; obj <= objMin {
			objMin, jSel = obj, t
		}
	}
	if gMax+gMax2 < eps || jSel < 0 {
		return -1, -1, false
	}

	return iSel, jSel, true
}

// update solves the two-variable subproblem on (i, j) and refreshes grad.
func (s *state) update(i, j int) {
	s.q.RowTo(s.rowI, i)
	s.q.RowTo(s.rowJ, j)
	qii, qjj, qij := s.q.Diag(i), s.q.Diag(j), s.rowI[j]
	oldI, oldJ := s.alpha[i], s.alpha[j]
	c := s.c

	if s.y[i] != s.y[j] {
		quad := qii + qjj + 2*qij
		if quad <= 0 {
			quad = tau
		}
		delta := (-s.grad[i] - s.grad[j]) / quad
		diff := oldI - oldJ
		ai, aj := oldI+delta, oldJ+delta
		if diff > 0 {
			if aj < 0 {
				aj, ai = 0, diff
			}
		} else if ai < 0 {
			ai, aj = 0, -diff
		}
		if diff > 0 {
			if ai > c {
				ai, aj = c, c-diff
			}
		} else if aj > c {
			aj, ai = c, c+diff
		}
		s.alpha[i], s.alpha[j] = ai, aj
	} else {
		quad := qii + qjj - 2*qij
		if quad <= 0 {
			quad = tau
		}
		delta := (s.grad[i] - s.grad[j]) / quad
		sum := oldI + oldJ
		ai, aj := oldI-delta, oldJ+delta
		if sum > c {
			if ai > c {
				ai, aj = c, sum-c
			}
		} else if aj < 0 {
			aj, ai = 0, sum
		}
		if sum > c {
			if aj > c {
				aj, ai = c, sum-c
			}
		} else if ai < 0 {
			ai, aj = 0, sum
		}
		s.alpha[i], s.alpha[j] = ai, aj
	}

	dI, dJ := s.alpha[i]-oldI, s.alpha[j]-oldJ
	for t := range s.grad {
		s.grad[t] += s.rowI[t]*dI + s.rowJ[t]*dJ
	}
}

// rho returns the offset ρ with f(x) = Σ α y k − ρ: the mean of y∇ over
// free variables, or the midpoint of the feasible interval when none is free.
func (s *state) rho() float64 {
	ub, lb := math.Inf(1), math.Inf(-1)
	var (
		sumFree float64
		nFree   int
	)
	for i := range s.alpha {
		yg := s.y[i] * s.grad[i]
		switch {
		case s.upper(i):
			if s.y[i] < 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		case s.lower(i):
			if s.y[i] > 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		default:
			nFree++
			sumFree += yg
		}
	}
	if nFree > 0 {
		return sumFree / float64(nFree)
	}

	return (ub + lb) / 2
}
