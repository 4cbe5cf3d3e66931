// SPDX-License-Identifier: MIT

// Package smo: functional options of the solver.
//
// Design goals:
//   - Defaults are documented constants; no global state.
//   - Constructors panic only on nonsensical values (programmer error).
package smo

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultC is the box bound of α and β.
	DefaultC = 1e6

	// DefaultClassificationTol is the KKT violation an α must exceed to be
	// stepped. It also bounds the equality residual of a warm start.
	DefaultClassificationTol = 1e-3

	// DefaultLyapunovTol is the KKT violation a β or γ must exceed to be
	// stepped.
	DefaultLyapunovTol = 1e-3

	// DefaultMaxEval caps the number of sweeps.
	DefaultMaxEval = 1000

	// DefaultInitialBeta is the starting value of every β.
	DefaultInitialBeta = 0.0
)

// stepNoise is the relative change below which a step is treated as
// rounding noise and rejected: |Δ| < stepNoise·(|x| + |x'| + stepNoise).
const stepNoise = 1e-12

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicCInvalid        = "smo: WithC: c must be finite and > 0"
	panicTolInvalid      = "smo: tolerance must be finite and > 0"
	panicMaxEvalInvalid  = "smo: WithMaxEval: n must be >= 1"
	panicTimeInvalid     = "smo: WithTimeLimit: d must be >= 0"
	panicLoggerNil       = "smo: WithLogger(nil)"
	panicGuessNil        = "smo: WithInitialGuess(nil)"
	panicObserverNil     = "smo: WithObserver(nil)"
	panicInitBetaInvalid = "smo: WithInitialBeta: x must be finite"
)

// Option configures a Solver.
type Option func(*options)

type options struct {
	c           float64
	classTol    float64
	lyapTol     float64
	maxEval     int
	timeLimit   time.Duration // 0 = none
	verbose     bool
	logger      *zap.Logger
	guess       InitialGuessProvider // nil = no warm start
	initialBeta float64
	observers   []Observer
}

func validTol(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}

// WithC sets the box bound of α and β.
func WithC(c float64) Option {
	if !validTol(c) {
		panic(panicCInvalid)
	}

	return func(o *options) { o.c = c }
}

// WithClassificationTol sets the KKT violation threshold of α. An α whose
// margin residual y·E is within tol of its bound condition is left alone.
func WithClassificationTol(tol float64) Option {
	if !validTol(tol) {
		panic(panicTolInvalid)
	}

	return func(o *options) { o.classTol = tol }
}

// WithLyapunovTol sets the KKT violation threshold of β (projected gradient)
// and γ (gradient).
func WithLyapunovTol(tol float64) Option {
	if !validTol(tol) {
		panic(panicTolInvalid)
	}

	return func(o *options) { o.lyapTol = tol }
}

// WithMaxEval caps the number of sweeps.
func WithMaxEval(n int) Option {
	if n < 1 {
		panic(panicMaxEvalInvalid)
	}

	return func(o *options) { o.maxEval = n }
}

// WithTimeLimit caps wall-clock time; 0 disables the cap.
func WithTimeLimit(d time.Duration) Option {
	if d < 0 {
		panic(panicTimeInvalid)
	}

	return func(o *options) { o.timeLimit = d }
}

// WithVerbose logs every accepted step at debug level.
func WithVerbose(v bool) Option {
	return func(o *options) { o.verbose = v }
}

// WithLogger sets the solver logger (default zap.NewNop()).
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

// WithInitialGuess sets the warm start provider for α.
func WithInitialGuess(p InitialGuessProvider) Option {
	if p == nil {
		panic(panicGuessNil)
	}

	return func(o *options) { o.guess = p }
}

// WithInitialBeta sets the starting value of every β; it is clamped to [0, C].
func WithInitialBeta(x float64) Option {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		panic(panicInitBetaInvalid)
	}

	return func(o *options) { o.initialBeta = x }
}

// WithObserver adds an observer. Observers are called in registration order.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic(panicObserverNil)
	}

	return func(o *options) { o.observers = append(o.observers, obs) }
}

func gatherOptions(user ...Option) options {
	o := options{
		c:           DefaultC,
		classTol:    DefaultClassificationTol,
		lyapTol:     DefaultLyapunovTol,
		maxEval:     DefaultMaxEval,
		logger:      zap.NewNop(),
		initialBeta: DefaultInitialBeta,
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
