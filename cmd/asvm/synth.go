package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/asvm/trajectory"
)

func (a *app) synthCmd() *cobra.Command {
	var (
		output                 string
		classes, dim           int
		count, steps           int
		spacing, radius, noise float64
		seed                   int64
	)
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write a synthetic dataset of converging trajectories",
		Long: `Class k gets trajectories converging to the point whose coordinates are
all k*spacing. Every class uses the same start pattern rotated by k/classes
of a turn.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if classes < 1 || dim < 1 {
				return fmt.Errorf("--classes and --dim must be >= 1")
			}
			if !(noise >= 0) {
				return fmt.Errorf("--noise must be >= 0, got %g", noise)
			}
			ds := &trajectory.Dataset{Dim: dim, Classes: make([][]trajectory.Trajectory, classes)}
			for k := range ds.Classes {
				center := make([]float64, dim)
				for d := range center {
					center[d] = float64(k) * spacing
				}
				trs, err := trajectory.Converging(center, radius, count, steps,
					trajectory.WithSeed(seed+int64(k)),
					trajectory.WithNoise(noise),
					trajectory.WithPhase(2*math.Pi*float64(k)/float64(classes)),
				)
				if err != nil {
					return err
				}
				ds.Classes[k] = trs
			}
			if err := trajectory.SaveDataset(output, ds); err != nil {
				return err
			}
			a.logger.Info("dataset written",
				zap.String("output", output),
				zap.Int("classes", classes),
				zap.Int("points", ds.NumPoints()))

			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&output, "output", "", "dataset output file (required)")
	fl.IntVar(&classes, "classes", 2, "number of classes")
	fl.IntVar(&dim, "dim", 2, "point dimension")
	fl.IntVar(&count, "count", 4, "trajectories per class")
	fl.IntVar(&steps, "steps", 4, "steps per trajectory")
	fl.Float64Var(&spacing, "spacing", 5, "distance between class centers along each axis")
	fl.Float64Var(&radius, "radius", 1, "start radius around each center")
	fl.Float64Var(&noise, "noise", 0, "Gaussian noise sigma on non-final points")
	fl.Int64Var(&seed, "seed", trajectory.DefaultSeed, "noise seed")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
