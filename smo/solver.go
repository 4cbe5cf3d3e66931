// SPDX-License-Identifier: MIT

package smo

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/asvm/matrix"
	"github.com/katalvlaran/asvm/modulation"
)

// checkEvery is the number of examined variables between two interruption
// checks (context and time limit).
const checkEvery = 64

// Solver runs SMO on one coefficient matrix. It owns its working state; a
// Solver may be reused for several Solve calls, which are serialized.
type Solver struct {
	mu sync.Mutex

	cm      *modulation.CoefficientMatrix
	q       *matrix.Symmetric
	o       options
	y       []float64
	m, p, n int
	dim     int

	// per-Solve working state
	v         []float64 // α | β | γ
	errA      []float64 // E_i = F_i + b − y_i, trusted for interior α only
	errB      []float64 // g_j = (Qv)_{M+j}, trusted for interior β only
	bias      float64
	iMin      int // interior α with the smallest cached error, -1 if none
	iMax      int
	nInterior int
	row1      []float64
	row2      []float64
	steps     StepCounts
	examined  int
	ctx       context.Context
	start     time.Time
}

// NewSolver validates cm and returns a Solver for it.
//
// Errors: ErrNilProblem, ErrBadProblem (sizes disagree, fewer than two α,
// labels outside ±1), matrix errors from the Q view.
func NewSolver(cm *modulation.CoefficientMatrix, opts ...Option) (*Solver, error) {
	if cm == nil || cm.Q == nil {
		return nil, fmt.Errorf("smo.NewSolver: %w", ErrNilProblem)
	}
	dim := cm.Dim()
	if n := cm.Q.SymmetricDim(); n != dim || len(cm.Labels) != cm.M || cm.M < 2 || cm.P < 0 || cm.N < 0 {
		return nil, fmt.Errorf("smo.NewSolver: order %d, M=%d P=%d N=%d labels=%d: %w",
			n, cm.M, cm.P, cm.N, len(cm.Labels), ErrBadProblem)
	}
	for i, y := range cm.Labels {
		if y != 1 && y != -1 {
			return nil, fmt.Errorf("smo.NewSolver: label %d is %g: %w", i, y, ErrBadProblem)
		}
	}
	q, err := matrix.NewSymmetric(cm.Q)
	if err != nil {
		return nil, fmt.Errorf("smo.NewSolver: %w", err)
	}

	return &Solver{
		cm:   cm,
		q:    q,
		o:    gatherOptions(opts...),
		y:    cm.Labels,
		m:    cm.M,
		p:    cm.P,
		n:    cm.N,
		dim:  dim,
		row1: make([]float64, dim),
		row2: make([]float64, dim),
	}, nil
}

// Solve is a convenience wrapper: NewSolver(cm, opts...).Solve(ctx).
func Solve(ctx context.Context, cm *modulation.CoefficientMatrix, opts ...Option) (*Result, error) {
	s, err := NewSolver(cm, opts...)
	if err != nil {
		return nil, err
	}

	return s.Solve(ctx)
}

// Solve runs the sweep state machine from a fresh start.
//
// Implementation:
//   - Stage 1: warm start α, set β to the clamped initial value, γ to zero,
//     compute exact residuals and the initial bias.
//   - Stage 2: sweep (examine-all ↔ examine-active) until an examine-all
//     sweep accepts nothing, MaxEval sweeps ran, or the time limit passed.
//     The bias is recomputed after every sweep.
//   - Stage 3: compute the objective and notify observers.
//
// Errors: ctx.Err() (wrapped) when the context is cancelled; no partial
// result is returned in that case.
// Determinism: no randomness; identical inputs give identical results.
// Complexity: O(dim²) setup, O(dim) per accepted step plus O(M·dim) per
// rejected partner scan.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx = ctx
	s.start = time.Now()
	s.steps = StepCounts{}
	s.examined = 0
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("smo.Solve: %w", err)
	}

	ws := s.initialize()
	log := s.o.logger.With(zap.Int("alpha", s.m), zap.Int("beta", s.p), zap.Int("gamma", s.n))
	log.Debug("smo start", zap.Stringer("warm_start", ws), zap.Float64("bias", s.bias))

	var (
		status     = statusRunning
		sweeps     int
		examineAll = true
	)
	for status == statusRunning {
		if sweeps >= s.o.maxEval {
			status = IterationBudgetExceeded
			break
		}
		changed, st, err := s.sweep(examineAll)
		if err != nil {
			return nil, fmt.Errorf("smo.Solve: sweep %d: %w", sweeps+1, err)
		}
		sweeps++
		s.updateBias()

		stats := SweepStats{
			Sweep:      sweeps,
			ExamineAll: examineAll,
			Changed:    changed,
			Interior:   s.nInterior,
			Bias:       s.bias,
		}
		for _, obs := range s.o.observers {
			obs.OnSweep(stats)
		}
		log.Debug("smo sweep",
			zap.Int("sweep", sweeps),
			zap.Bool("examine_all", examineAll),
			zap.Int("changed", changed),
			zap.Int("interior", s.nInterior),
			zap.Float64("bias", s.bias),
		)

		switch {
		case st != statusRunning:
			status = st
		case examineAll && changed == 0:
			status = Converged
		case examineAll:
			examineAll = false
		case changed == 0:
			examineAll = true
		}
	}

	res := Result{
		Solution: Solution{
			Alpha: append([]float64(nil), s.v[:s.m]...),
			Beta:  append([]float64(nil), s.v[s.m:s.m+s.p]...),
			Gamma: append([]float64(nil), s.v[s.m+s.p:]...),
			Bias:  s.bias,
		},
		Status:    status,
		Sweeps:    sweeps,
		Steps:     s.steps,
		WarmStart: ws,
		Objective: s.objective(),
		Elapsed:   time.Since(s.start),
	}
	for _, obs := range s.o.observers {
		obs.OnFinish(res)
	}
	log.Info("smo finished",
		zap.Stringer("status", status),
		zap.Int("sweeps", sweeps),
		zap.Int("steps", s.steps.Accepted()),
		zap.Int("rejected", s.steps.Rejected),
		zap.Float64("objective", res.Objective),
		zap.Duration("elapsed", res.Elapsed),
	)

	return &res, nil
}

// initialize resets the working state and computes exact residuals.
func (s *Solver) initialize() WarmStart {
	s.v = make([]float64, s.dim)
	s.errA = make([]float64, s.m)
	s.errB = make([]float64, s.p)

	ws := s.warmStart()

	beta := clamp(s.o.initialBeta, 0, s.o.c)
	for j := 0; j < s.p; j++ {
		s.v[s.m+j] = beta
	}

	// Qv in one symmetric mat-vec.
	var qv mat.VecDense
	qv.MulVec(s.cm.Q, mat.NewVecDense(s.dim, s.v))

	f := make([]float64, s.m)
	for i := 0; i < s.m; i++ {
		f[i] = s.y[i] * qv.AtVec(i)
	}
	s.bias = s.biasFrom(func(i int) float64 { return f[i] }, 0)
	for i := 0; i < s.m; i++ {
		s.errA[i] = f[i] + s.bias - s.y[i]
	}
	for j := 0; j < s.p; j++ {
		s.errB[j] = qv.AtVec(s.m + j)
	}
	s.refreshExtremes()

	return ws
}

// warmStart seeds α from the provider. Failures are logged and leave α at 0.
func (s *Solver) warmStart() WarmStart {
	if s.o.guess == nil {
		return WarmStartNone
	}
	var (
		a   []float64
		err error
	)
	if s.cm.Set == nil {
		err = ErrNoTrainingSet
	} else {
		a, err = s.o.guess.Classify(s.ctx, s.cm.Set.Coords(), s.y)
	}
	if err == nil {
		a, err = checkGuess(a, s.y, s.o.c, s.o.classTol)
	}
	if err != nil {
		s.o.logger.Warn("warm start rejected, starting from zero", zap.Error(err))

		return WarmStartRejected
	}
	copy(s.v[:s.m], a)

	return WarmStartAccepted
}

// sweep examines either every variable or the active ones. It returns the
// number of accepted steps and a terminal status when interrupted by the
// time limit.
func (s *Solver) sweep(examineAll bool) (int, Status, error) {
	var changed int
	visit := func(step func(int) int, idx int) (Status, error) {
		changed += step(idx)
		s.examined++
		if s.examined%checkEvery == 0 {
			return s.checkpoint()
		}

		return statusRunning, nil
	}

	var (
		st  Status
		err error
	)
	for i := 0; i < s.m; i++ {
		if examineAll || s.interiorAlpha(i) {
			if st, err = visit(s.examineAlpha, i); err != nil || st != statusRunning {
				return changed, st, err
			}
		}
	}
	for j := 0; j < s.p; j++ {
		if examineAll || s.interiorBeta(j) {
			if st, err = visit(s.examineBeta, j); err != nil || st != statusRunning {
				return changed, st, err
			}
		}
	}
	for d := 0; d < s.n; d++ {
		if st, err = visit(s.examineGamma, d); err != nil || st != statusRunning {
			return changed, st, err
		}
	}
	st, err = s.checkpoint()

	return changed, st, err
}

// checkpoint reports context cancellation as an error and an exhausted time
// limit as TimeLimitExceeded.
func (s *Solver) checkpoint() (Status, error) {
	if err := s.ctx.Err(); err != nil {
		return statusRunning, err
	}
	if s.o.timeLimit > 0 && time.Since(s.start) >= s.o.timeLimit {
		return TimeLimitExceeded, nil
	}

	return statusRunning, nil
}

func (s *Solver) interiorAlpha(i int) bool {
	a := s.v[i]

	return a > 0 && a < s.o.c
}

func (s *Solver) interiorBeta(j int) bool {
	b := s.v[s.m+j]

	return b > 0 && b < s.o.c
}

// qvAt returns (Qv)_r from row r. O(dim).
func (s *Solver) qvAt(r int) float64 {
	var (
		sum float64
		k   int
	)
	for k = 0; k < s.dim; k++ {
		if s.v[k] != 0 {
			sum += s.v[k] * s.q.Get(r, k)
		}
	}

	return sum
}

// alphaError returns E_i, from the cache for interior α and from row i
// otherwise; the exact value is stored back.
func (s *Solver) alphaError(i int) float64 {
	if s.interiorAlpha(i) {
		return s.errA[i]
	}
	e := s.y[i]*s.qvAt(i) + s.bias - s.y[i]
	s.errA[i] = e

	return e
}

// betaGrad returns g_j with the same cache policy as alphaError.
func (s *Solver) betaGrad(j int) float64 {
	if s.interiorBeta(j) {
		return s.errB[j]
	}
	g := s.qvAt(s.m + j)
	s.errB[j] = g

	return g
}

// track folds interior α k into the extreme-error indices.
func (s *Solver) track(k int) {
	s.nInterior++
	if s.iMin < 0 || s.errA[k] < s.errA[s.iMin] {
		s.iMin = k
	}
	if s.iMax < 0 || s.errA[k] > s.errA[s.iMax] {
		s.iMax = k
	}
}

func (s *Solver) resetExtremes() {
	s.iMin, s.iMax, s.nInterior = -1, -1, 0
}

// refreshExtremes rescans interior α for the extreme-error indices.
func (s *Solver) refreshExtremes() {
	s.resetExtremes()
	for k := 0; k < s.m; k++ {
		if s.interiorAlpha(k) {
			s.track(k)
		}
	}
}

// objective returns ½ vᵀQv − Σ α.
func (s *Solver) objective() float64 {
	x := mat.NewVecDense(s.dim, s.v)
	var sum float64
	for i := 0; i < s.m; i++ {
		sum += s.v[i]
	}

	return 0.5*mat.Inner(x, s.cm.Q, x) - sum
}

// notify logs and dispatches an accepted step.
func (s *Solver) notify(ev StepEvent) {
	if s.o.verbose {
		s.o.logger.Debug("smo step",
			zap.Stringer("group", ev.Group),
			zap.Int("index", ev.Index),
			zap.Int("partner", ev.Partner),
			zap.Float64("old", ev.Old),
			zap.Float64("new", ev.New),
		)
	}
	for _, obs := range s.o.observers {
		obs.OnStep(ev)
	}
}

// isFinite reports whether x is neither NaN nor ±Inf.
func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
