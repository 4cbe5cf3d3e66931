// SPDX-License-Identifier: MIT

package asvm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/asvm/config"
	"github.com/katalvlaran/asvm/csvc"
	"github.com/katalvlaran/asvm/kernel"
	"github.com/katalvlaran/asvm/metrics"
	"github.com/katalvlaran/asvm/model"
	"github.com/katalvlaran/asvm/modulation"
	"github.com/katalvlaran/asvm/smo"
	"github.com/katalvlaran/asvm/trajectory"
)

const tracerName = "github.com/katalvlaran/asvm"

// TrainConfig configures one training run. The zero value of every optional
// field selects the package default.
type TrainConfig struct {
	Target int           // index of the target class
	Kernel kernel.Params // kernel family and λ
	Solver config.Solver // solver parameters; zero value means config.Default()

	InitialBeta float64 // starting value of every β
	WarmStart   bool    // seed α with a binary C-SVC
	Workers     int     // builder workers; 0 = GOMAXPROCS

	Tolerances *model.Tolerances // support filter; nil = model.DefaultTolerances()
	Logger     *zap.Logger       // nil = zap.NewNop()
	Metrics    *metrics.Collector
	Observers  []smo.Observer
}

// Report is the outcome of Train.
type Report struct {
	// Classifier is nil when no α survived the support filter.
	Classifier *model.Classifier
	Result     smo.Result
	M, P, N    int
	BuildTime  time.Duration
}

// Train builds the coefficient matrix, solves it and condenses the solution
// into a Classifier.
//
// Budget and time limit statuses are not errors: the report carries the
// classifier of the last solution. A degenerate solution returns the report
// together with an error wrapping model.ErrNoSupportVectors.
//
// Errors: trajectory, kernel and config validation errors; ctx.Err();
// model.ErrNoSupportVectors.
func Train(ctx context.Context, ds *trajectory.Dataset, cfg TrainConfig) (rep *Report, err error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	solverCfg := cfg.Solver
	if solverCfg == (config.Solver{}) {
		solverCfg = config.Default()
	}
	if err = solverCfg.Validate(); err != nil {
		return nil, err
	}
	tol := model.DefaultTolerances()
	if cfg.Tolerances != nil {
		tol = *cfg.Tolerances
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "asvm.Train", trace.WithAttributes(
		attribute.String("kernel", cfg.Kernel.Kind.String()),
		attribute.Float64("lambda", cfg.Kernel.Lambda),
		attribute.Int("target", cfg.Target),
		attribute.Bool("warm_start", cfg.WarmStart),
	))
	defer func() { endSpan(span, err) }()

	rep = &Report{}

	// Stage 1: coefficient matrix.
	bctx, bspan := tracer.Start(ctx, "modulation.Build")
	bopts := []modulation.Option{modulation.WithLogger(logger)}
	if cfg.Workers > 0 {
		bopts = append(bopts, modulation.WithWorkers(cfg.Workers))
	}
	start := time.Now()
	cm, err := modulation.Build(bctx, ds, cfg.Target, cfg.Kernel, bopts...)
	rep.BuildTime = time.Since(start)
	if err == nil {
		bspan.SetAttributes(attribute.Int("m", cm.M), attribute.Int("p", cm.P), attribute.Int("n", cm.N))
	}
	endSpan(bspan, err)
	if err != nil {
		return nil, fmt.Errorf("asvm.Train: %w", err)
	}
	rep.M, rep.P, rep.N = cm.M, cm.P, cm.N
	if cfg.Metrics != nil {
		cfg.Metrics.ObserveBuild(rep.BuildTime, cm.Dim())
	}
	logger.Info("coefficient matrix ready",
		zap.Int("m", cm.M), zap.Int("p", cm.P), zap.Int("n", cm.N),
		zap.Duration("elapsed", rep.BuildTime))

	// Stage 2: solve.
	opts := append(solverCfg.SolverOptions(),
		smo.WithLogger(logger),
		smo.WithInitialBeta(cfg.InitialBeta),
	)
	if cfg.WarmStart {
		p, perr := csvc.NewProvider(cfg.Kernel, csvc.WithC(solverCfg.C), csvc.WithLogger(logger))
		if perr != nil {
			return nil, fmt.Errorf("asvm.Train: %w", perr)
		}
		opts = append(opts, smo.WithInitialGuess(p))
	}
	if cfg.Metrics != nil {
		opts = append(opts, smo.WithObserver(cfg.Metrics))
	}
	for _, obs := range cfg.Observers {
		opts = append(opts, smo.WithObserver(obs))
	}

	sctx, sspan := tracer.Start(ctx, "smo.Solve")
	res, err := smo.Solve(sctx, cm, opts...)
	if err == nil {
		sspan.SetAttributes(
			attribute.String("status", res.Status.String()),
			attribute.Int("sweeps", res.Sweeps),
			attribute.String("warm_start", res.WarmStart.String()),
			attribute.Float64("objective", res.Objective),
		)
	}
	endSpan(sspan, err)
	if err != nil {
		return nil, fmt.Errorf("asvm.Train: %w", err)
	}
	rep.Result = *res
	if res.Status != smo.Converged {
		logger.Warn("solver stopped before convergence",
			zap.Stringer("status", res.Status), zap.Int("sweeps", res.Sweeps))
	}

	// Stage 3: condense.
	_, mspan := tracer.Start(ctx, "model.FromSolution")
	c, err := model.FromSolution(res.Solution, cm, tol)
	if err == nil {
		mspan.SetAttributes(attribute.Int("alpha_sv", c.NumAlpha()), attribute.Int("beta_sv", c.NumBeta()))
	}
	endSpan(mspan, err)
	if err != nil {
		if errors.Is(err, model.ErrNoSupportVectors) {
			logger.Warn("degenerate model", zap.Error(err))

			return rep, fmt.Errorf("asvm.Train: %w", err)
		}

		return nil, fmt.Errorf("asvm.Train: %w", err)
	}
	rep.Classifier = c
	logger.Info("classifier ready",
		zap.Int("alpha_sv", c.NumAlpha()),
		zap.Int("beta_sv", c.NumBeta()),
		zap.Float64("bias", c.Bias()))

	return rep, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
