package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitBudget     = 2
	exitDegenerate = 3
)

// codedError carries a non-default exit code out of a command.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}

	return e.err.Error()
}
func (e *codedError) Unwrap() error { return e.err }

func withCode(code int, err error) error { return &codedError{code: code, err: err} }

// app holds state shared by subcommands.
type app struct {
	out, errOut io.Writer
	verbose     bool
	logger      *zap.Logger
	runID       string
}

// run executes the CLI and returns the process exit code.
func run(args []string, out, errOut io.Writer) int {
	a := &app{out: out, errOut: errOut}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := root.ExecuteContext(ctx)
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err == nil {
		return exitOK
	}
	var ce *codedError
	if errors.As(err, &ce) {
		if ce.err != nil {
			fmt.Fprintln(errOut, "asvm:", ce.err)
		}

		return ce.code
	}
	fmt.Fprintln(errOut, "asvm:", err)

	return exitError
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "asvm",
		Short:         "Train and evaluate Augmented SVM classifiers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.runID = uuid.NewString()
			a.logger = newLogger(a.errOut, a.verbose).With(
				zap.String("run_id", a.runID),
				zap.String("command", cmd.Name()),
			)

			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging and per-step solver trace")

	root.AddCommand(a.trainCmd(), a.evalCmd(), a.synthCmd())

	return root
}

// newLogger returns a JSON logger on w, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}
