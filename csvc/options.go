// SPDX-License-Identifier: MIT

package csvc

import (
	"math"

	"go.uber.org/zap"
)

const (
	// DefaultC is the box bound.
	DefaultC = 1.0

	// DefaultEps is the stopping tolerance on the maximal violating pair.
	DefaultEps = 1e-3

	// DefaultMaxIter caps the number of pair updates.
	DefaultMaxIter = 10_000_000

	// tau replaces a non-positive curvature, as in libsvm.
	tau = 1e-12

	// ctxCheckEvery is the number of iterations between context checks.
	ctxCheckEvery = 1024
)

const (
	panicCInvalid       = "csvc: WithC: c must be finite and > 0"
	panicEpsInvalid     = "csvc: WithEps: eps must be finite and > 0"
	panicMaxIterInvalid = "csvc: WithMaxIter: n must be >= 1"
	panicLoggerNil      = "csvc: WithLogger(nil)"
)

// Option configures a Provider.
type Option func(*options)

type options struct {
	c       float64
	eps     float64
	maxIter int
	logger  *zap.Logger
}

// WithC sets the box bound.
func WithC(c float64) Option {
	if !(c > 0) || math.IsInf(c, 0) {
		panic(panicCInvalid)
	}

	return func(o *options) { o.c = c }
}

// WithEps sets the stopping tolerance.
func WithEps(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		panic(panicEpsInvalid)
	}

	return func(o *options) { o.eps = eps }
}

// WithMaxIter caps the number of iterations.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic(panicMaxIterInvalid)
	}

	return func(o *options) { o.maxIter = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

func gatherOptions(user ...Option) options {
	o := options{
		c:       DefaultC,
		eps:     DefaultEps,
		maxIter: DefaultMaxIter,
		logger:  zap.NewNop(),
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
