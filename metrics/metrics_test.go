package metrics_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/asvm/kernel"
	"github.com/katalvlaran/asvm/metrics"
	"github.com/katalvlaran/asvm/modulation"
	"github.com/katalvlaran/asvm/smo"
	"github.com/katalvlaran/asvm/trajectory"
)

func TestCollector_Events(t *testing.T) {
	t.Parallel()
	c := metrics.New()

	c.OnStep(smo.StepEvent{Group: modulation.Alpha})
	c.OnStep(smo.StepEvent{Group: modulation.Alpha})
	c.OnStep(smo.StepEvent{Group: modulation.Gamma})
	c.OnSweep(smo.SweepStats{Sweep: 1, ExamineAll: true, Interior: 4, Bias: 0.5})
	c.OnSweep(smo.SweepStats{Sweep: 2, Interior: 3, Bias: -0.25})
	c.OnFinish(smo.Result{
		Status:    smo.IterationBudgetExceeded,
		Steps:     smo.StepCounts{Rejected: 7, Degenerate: 2},
		Objective: -1.5,
		Elapsed:   time.Millisecond,
	})
	c.ObserveBuild(time.Millisecond, 38)

	body := `
# HELP asvm_smo_steps_total Accepted solver steps by variable group.
# TYPE asvm_smo_steps_total counter
asvm_smo_steps_total{group="alpha"} 2
asvm_smo_steps_total{group="gamma"} 1
`
	n, err := testutil.GatherAndCount(c.Gatherer(), "asvm_smo_steps_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, testutil.GatherAndCompare(c.Gatherer(),
		strings.NewReader(body), "asvm_smo_steps_total"))

	require.NoError(t, testutil.GatherAndCompare(c.Gatherer(), strings.NewReader(`
# HELP asvm_smo_bias Bias after the last sweep.
# TYPE asvm_smo_bias gauge
asvm_smo_bias -0.25
# HELP asvm_smo_interior_alphas Interior alpha variables after the last sweep.
# TYPE asvm_smo_interior_alphas gauge
asvm_smo_interior_alphas 3
# HELP asvm_smo_rejected_steps_total Step attempts rejected by the solver.
# TYPE asvm_smo_rejected_steps_total counter
asvm_smo_rejected_steps_total 7
# HELP asvm_smo_runs_total Finished solver runs by terminal status.
# TYPE asvm_smo_runs_total counter
asvm_smo_runs_total{status="iteration_budget_exceeded"} 1
# HELP asvm_modulation_matrix_dim Order of the last assembled coefficient matrix.
# TYPE asvm_modulation_matrix_dim gauge
asvm_modulation_matrix_dim 38
`), "asvm_smo_bias", "asvm_smo_interior_alphas", "asvm_smo_rejected_steps_total",
		"asvm_smo_runs_total", "asvm_modulation_matrix_dim"))
}

func TestCollector_SolverAndTextfile(t *testing.T) {
	t.Parallel()
	pos, err := trajectory.Converging([]float64{0, 0}, 1, 2, 3)
	require.NoError(t, err)
	neg, err := trajectory.Converging([]float64{4, 4}, 1, 2, 3)
	require.NoError(t, err)
	ds, err := trajectory.NewDataset(pos, neg)
	require.NoError(t, err)
	cm, err := modulation.Build(context.Background(), ds, 0, kernel.Params{Kind: kernel.RBF, Lambda: 1})
	require.NoError(t, err)

	c := metrics.New()
	res, err := smo.Solve(context.Background(), cm, smo.WithC(10), smo.WithObserver(c))
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(c.Gatherer(), "asvm_smo_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	if res.Steps.Alpha > 0 {
		n, err = testutil.GatherAndCount(c.Gatherer(), "asvm_smo_steps_total")
		require.NoError(t, err)
		assert.Positive(t, n)
	}

	path := filepath.Join(t.TempDir(), "asvm.prom")
	require.NoError(t, c.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "asvm_smo_runs_total{status=\""+res.Status.String()+"\"} 1")

	assert.Error(t, c.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")))
}
