package asvm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/asvm"
	"github.com/katalvlaran/asvm/config"
	"github.com/katalvlaran/asvm/kernel"
	"github.com/katalvlaran/asvm/metrics"
	"github.com/katalvlaran/asvm/model"
	"github.com/katalvlaran/asvm/smo"
	"github.com/katalvlaran/asvm/trajectory"
)

func dataset(t *testing.T) *trajectory.Dataset {
	t.Helper()
	pos, err := trajectory.Converging([]float64{0, 0}, 1, 3, 4)
	require.NoError(t, err)
	neg, err := trajectory.Converging([]float64{4, 4}, 1, 3, 4, trajectory.WithPhase(0.3))
	require.NoError(t, err)
	ds, err := trajectory.NewDataset(pos, neg)
	require.NoError(t, err)

	return ds
}

func solverConfig() config.Solver {
	s := config.Default()
	s.C = 100
	s.MaxEval = 10000

	return s
}

func TestTrain_Pipeline(t *testing.T) {
	t.Parallel()
	col := metrics.New()
	var sweeps int

	rep, err := asvm.Train(context.Background(), dataset(t), asvm.TrainConfig{
		Kernel:    kernel.Params{Kind: kernel.RBF, Lambda: 1},
		Solver:    solverConfig(),
		WarmStart: true,
		Workers:   2,
		Logger:    zaptest.NewLogger(t),
		Metrics:   col,
		Observers: []smo.Observer{smo.ObserverFuncs{Sweep: func(s smo.SweepStats) { sweeps = s.Sweep }}},
	})
	require.NoError(t, err)
	require.NotNil(t, rep.Classifier)
	assert.Equal(t, 24, rep.M)
	assert.Equal(t, 12, rep.P)
	assert.Equal(t, 2, rep.N)
	assert.Equal(t, smo.WarmStartAccepted, rep.Result.WarmStart)
	assert.Equal(t, rep.Result.Sweeps, sweeps)
	assert.Len(t, rep.Result.Solution.Alpha, rep.M)
	assert.Len(t, rep.Result.Solution.Beta, rep.P)
	assert.Len(t, rep.Result.Solution.Gamma, rep.N)
	assert.Positive(t, rep.BuildTime)

	y, err := rep.Classifier.Classify([]float64{0.5, 0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, y)
	y, err = rep.Classifier.Classify([]float64{4.5, 4})
	require.NoError(t, err)
	assert.Equal(t, -1.0, y)
}

func TestTrain_DefaultSolverConfig(t *testing.T) {
	t.Parallel()
	rep, err := asvm.Train(context.Background(), dataset(t), asvm.TrainConfig{
		Kernel: kernel.Params{Kind: kernel.RBF, Lambda: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, smo.WarmStartNone, rep.Result.WarmStart)
}

func TestTrain_Degenerate(t *testing.T) {
	t.Parallel()
	rep, err := asvm.Train(context.Background(), dataset(t), asvm.TrainConfig{
		Kernel:     kernel.Params{Kind: kernel.RBF, Lambda: 1},
		Solver:     solverConfig(),
		Tolerances: &model.Tolerances{AlphaRel: 1, BetaRel: 0},
	})
	require.ErrorIs(t, err, model.ErrNoSupportVectors)
	require.NotNil(t, rep)
	assert.Nil(t, rep.Classifier)
}

func TestTrain_Errors(t *testing.T) {
	t.Parallel()
	ds := dataset(t)
	kp := kernel.Params{Kind: kernel.RBF, Lambda: 1}
	ctx := context.Background()

	bad := solverConfig()
	bad.C = -1
	_, err := asvm.Train(ctx, ds, asvm.TrainConfig{Kernel: kp, Solver: bad})
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = asvm.Train(ctx, ds, asvm.TrainConfig{Kernel: kp, Target: 5})
	assert.ErrorIs(t, err, trajectory.ErrTargetOutOfRange)

	_, err = asvm.Train(ctx, ds, asvm.TrainConfig{Kernel: kernel.Params{Kind: kernel.RBF}})
	assert.ErrorIs(t, err, kernel.ErrBadLambda)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = asvm.Train(cancelled, ds, asvm.TrainConfig{Kernel: kp, Logger: zap.NewNop()})
	assert.ErrorIs(t, err, context.Canceled)
}

// Not parallel: installs the global tracer provider.
func TestTrain_Spans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	_, err := asvm.Train(context.Background(), dataset(t), asvm.TrainConfig{
		Kernel: kernel.Params{Kind: kernel.RBF, Lambda: 1},
		Solver: solverConfig(),
	})
	require.NoError(t, err)

	var names []string
	for _, s := range sr.Ended() {
		names = append(names, s.Name())
	}
	assert.ElementsMatch(t, []string{"modulation.Build", "smo.Solve", "model.FromSolution", "asvm.Train"}, names)
}
