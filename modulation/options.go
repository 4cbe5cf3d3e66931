// SPDX-License-Identifier: MIT

package modulation

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/asvm/matrix"
)

// DefaultChunkRows is the number of matrix rows handed to one task.
const DefaultChunkRows = 32

const (
	panicWorkersInvalid = "modulation: WithWorkers: n must be >= 1"
	panicChunkInvalid   = "modulation: WithChunkRows: rows must be >= 1"
	panicLoggerNil      = "modulation: WithLogger(nil)"
)

// Option configures Build.
type Option func(*options)

type options struct {
	workers   int // concurrent tasks; default GOMAXPROCS
	chunkRows int // rows per task; DefaultChunkRows
	logger    *zap.Logger
	validate  []matrix.Option
}

// WithWorkers bounds the number of concurrent row tasks. 1 runs sequentially.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithChunkRows sets how many rows one task computes.
func WithChunkRows(rows int) Option {
	if rows < 1 {
		panic(panicChunkInvalid)
	}

	return func(o *options) { o.chunkRows = rows }
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

// WithValidation sets the numeric policy of the post-build matrix check.
func WithValidation(opts ...matrix.Option) Option {
	return func(o *options) { o.validate = append(o.validate, opts...) }
}

func gatherOptions(user ...Option) options {
	o := options{
		workers:   runtime.GOMAXPROCS(0),
		chunkRows: DefaultChunkRows,
		logger:    zap.NewNop(),
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
