package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/asvm"
	"github.com/katalvlaran/asvm/config"
	"github.com/katalvlaran/asvm/kernel"
	"github.com/katalvlaran/asvm/metrics"
	"github.com/katalvlaran/asvm/model"
	"github.com/katalvlaran/asvm/smo"
	"github.com/katalvlaran/asvm/trajectory"
)

type trainFlags struct {
	data, output string
	sigma        float64
	tclass       int
	xinit        float64
	param        string
	kernel       string
	degree       int
	warmStart    bool
	timeout      time.Duration
	workers      int
	metricsFile  string
	traceFile    string
}

func (a *app) trainCmd() *cobra.Command {
	var f trainFlags
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a classifier on a trajectory dataset",
		Long: `Train an Augmented SVM for one target class and write the model file.

Exit Codes:
  0 = converged
  1 = input or runtime error
  2 = iteration budget or time limit exhausted (model still written)
  3 = no support vectors survived (no model written)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.train(cmd.Context(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.data, "data", "", "training dataset file (required)")
	fl.StringVar(&f.output, "output", "", "model output file (required)")
	fl.Float64Var(&f.sigma, "sigma", 1, "RBF kernel width; lambda = 1/(2 sigma^2)")
	fl.IntVar(&f.tclass, "tclass", 0, "target class index")
	fl.Float64Var(&f.xinit, "xinit", smo.DefaultInitialBeta, "initial value of every beta variable")
	fl.StringVar(&f.param, "param", "", "solver parameter file (YAML or legacy key-value lines)")
	fl.StringVar(&f.kernel, "kernel", "rbf", "kernel family: rbf or poly")
	fl.IntVar(&f.degree, "degree", 2, "polynomial kernel degree")
	fl.BoolVar(&f.warmStart, "warm-start", false, "seed alpha with a binary C-SVC")
	fl.DurationVar(&f.timeout, "timeout", 0, "solver wall-clock limit; overrides time_limit")
	fl.IntVar(&f.workers, "workers", 0, "matrix builder workers (0 = GOMAXPROCS)")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	fl.StringVar(&f.traceFile, "trace-file", "", "write OpenTelemetry spans to this file")
	_ = cmd.MarkFlagRequired("data")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (f trainFlags) kernelParams() (kernel.Params, error) {
	kind, err := kernel.ParseKind(f.kernel)
	if err != nil {
		return kernel.Params{}, err
	}
	kp := kernel.Params{Kind: kind, Lambda: float64(f.degree)}
	if kind == kernel.RBF {
		if f.sigma <= 0 {
			return kernel.Params{}, fmt.Errorf("--sigma must be > 0, got %g", f.sigma)
		}
		kp.Lambda = kernel.LambdaFromWidth(f.sigma)
	}

	return kp, kp.Validate()
}

func (a *app) train(ctx context.Context, f trainFlags) (err error) {
	log := a.logger

	kp, err := f.kernelParams()
	if err != nil {
		return err
	}
	solver := config.Default()
	if f.param != "" {
		if solver, err = config.Load(f.param); err != nil {
			return err
		}
	}
	if f.timeout > 0 {
		solver.TimeLimit = f.timeout
	}
	if a.verbose {
		solver.Verbose = true
	}
	ds, err := trajectory.LoadDataset(f.data)
	if err != nil {
		return err
	}

	if f.traceFile != "" {
		shutdown, terr := installTracer(f.traceFile)
		if terr != nil {
			return terr
		}
		defer func() {
			if serr := shutdown(context.Background()); serr != nil && err == nil {
				err = serr
			}
		}()
	}
	var col *metrics.Collector
	if f.metricsFile != "" {
		col = metrics.New()
	}

	log.Info("training",
		zap.String("data", f.data),
		zap.Int("classes", len(ds.Classes)),
		zap.Int("dim", ds.Dim),
		zap.Stringer("kernel", kp.Kind),
		zap.Float64("lambda", kp.Lambda),
		zap.Int("target", f.tclass))

	rep, err := asvm.Train(ctx, ds, asvm.TrainConfig{
		Target:      f.tclass,
		Kernel:      kp,
		Solver:      solver,
		InitialBeta: f.xinit,
		WarmStart:   f.warmStart,
		Workers:     f.workers,
		Logger:      log,
		Metrics:     col,
	})
	if col != nil && rep != nil {
		if merr := col.WriteTextfile(f.metricsFile); merr != nil {
			log.Warn("metrics not written", zap.Error(merr))
		}
	}
	if err != nil {
		if errors.Is(err, model.ErrNoSupportVectors) {
			return withCode(exitDegenerate, err)
		}

		return err
	}

	if err = model.Save(f.output, rep.Classifier); err != nil {
		return err
	}
	res := rep.Result
	log.Info("model written",
		zap.String("output", f.output),
		zap.Stringer("status", res.Status),
		zap.Int("sweeps", res.Sweeps),
		zap.Int("alpha_sv", rep.Classifier.NumAlpha()),
		zap.Int("beta_sv", rep.Classifier.NumBeta()),
		zap.Duration("elapsed", res.Elapsed))
	fmt.Fprintf(a.out, "%s sweeps=%d alpha_sv=%d beta_sv=%d\n",
		res.Status, res.Sweeps, rep.Classifier.NumAlpha(), rep.Classifier.NumBeta())

	if res.Status != smo.Converged {
		return withCode(exitBudget, nil)
	}

	return nil
}

// installTracer exports spans as JSON to path and returns the flush function.
func installTracer(path string) (func(context.Context) error, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace file: %w", err)
	}
	exp, err := stdouttrace.New(stdouttrace.WithWriter(file))
	if err != nil {
		file.Close()

		return nil, fmt.Errorf("trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) error {
		otel.SetTracerProvider(prev)
		err := tp.Shutdown(ctx)
		if cerr := file.Close(); err == nil {
			err = cerr
		}

		return err
	}, nil
}
