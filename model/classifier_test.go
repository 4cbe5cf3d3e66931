package model_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/asvm/kernel"
	"github.com/katalvlaran/asvm/model"
	"github.com/katalvlaran/asvm/modulation"
	"github.com/katalvlaran/asvm/smo"
	"github.com/katalvlaran/asvm/trajectory"
)

var rbf = kernel.Params{Kind: kernel.RBF, Lambda: 1}

// trained solves the (0,0) vs (5,5) scenario with box bound c.
func trained(t testing.TB, c float64) (*modulation.CoefficientMatrix, smo.Solution) {
	t.Helper()
	pos, err := trajectory.Converging([]float64{0, 0}, 1, 4, 4)
	require.NoError(t, err)
	neg, err := trajectory.Converging([]float64{5, 5}, 1, 4, 4)
	require.NoError(t, err)
	ds, err := trajectory.NewDataset(pos, neg)
	require.NoError(t, err)
	cm, err := modulation.Build(context.Background(), ds, 0, rbf)
	require.NoError(t, err)
	res, err := smo.Solve(context.Background(), cm, smo.WithC(c), smo.WithMaxEval(10000))
	require.NoError(t, err)

	return cm, res.Solution
}

// heldOut returns the non-final points of rotated trajectories around center.
func heldOut(t *testing.T, center []float64) [][]float64 {
	t.Helper()
	trs, err := trajectory.Converging(center, 0.8, 4, 4, trajectory.WithPhase(0.4))
	require.NoError(t, err)
	var out [][]float64
	for _, tr := range trs {
		out = append(out, tr.Points[:tr.Len()-1]...)
	}

	return out
}

func TestFromSolution_Separates(t *testing.T) {
	t.Parallel()
	cm, sol := trained(t, 1e6)
	c, err := model.FromSolution(sol, cm, model.DefaultTolerances())
	require.NoError(t, err)
	require.Positive(t, c.NumAlpha())
	assert.Equal(t, 2, c.Dim())
	assert.Equal(t, rbf, c.Kernel())

	for _, x := range heldOut(t, []float64{0, 0}) {
		f, err := c.Value(x)
		require.NoError(t, err)
		assert.Positive(t, f, "target point %v", x)
		y, err := c.Classify(x)
		require.NoError(t, err)
		assert.Equal(t, 1.0, y)
	}
	for _, x := range heldOut(t, []float64{5, 5}) {
		f, err := c.Value(x)
		require.NoError(t, err)
		assert.Negative(t, f, "other point %v", x)
	}
}

func TestFromSolution_ToleranceMonotone(t *testing.T) {
	t.Parallel()
	cm, sol := trained(t, 1e6)

	loose, err := model.FromSolution(sol, cm, model.Tolerances{AlphaRel: 1e-8, BetaRel: 1e-8})
	require.NoError(t, err)
	strict, err := model.FromSolution(sol, cm, model.Tolerances{AlphaRel: 0.5, BetaRel: 0.5})
	require.NoError(t, err)
	assert.LessOrEqual(t, strict.NumAlpha(), loose.NumAlpha())
	assert.LessOrEqual(t, strict.NumBeta(), loose.NumBeta())
	assert.GreaterOrEqual(t, strict.NumAlpha(), 1)
}

func TestFromSolution_Errors(t *testing.T) {
	t.Parallel()
	cm, sol := trained(t, 1e6)

	zero := sol.Clone()
	for i := range zero.Alpha {
		zero.Alpha[i] = 0
	}
	c, err := model.FromSolution(zero, cm, model.DefaultTolerances())
	assert.ErrorIs(t, err, model.ErrNoSupportVectors)
	assert.Nil(t, c)

	short := sol.Clone()
	short.Beta = short.Beta[:1]
	_, err = model.FromSolution(short, cm, model.DefaultTolerances())
	assert.ErrorIs(t, err, model.ErrShape)

	_, err = model.FromSolution(sol, nil, model.DefaultTolerances())
	assert.ErrorIs(t, err, model.ErrShape)

	_, err = model.FromSolution(sol, cm, model.Tolerances{AlphaRel: -1})
	assert.ErrorIs(t, err, model.ErrBadTolerance)
}

func TestGradient_FiniteDifference(t *testing.T) {
	t.Parallel()
	cm, sol := trained(t, 10)
	c, err := model.FromSolution(sol, cm, model.DefaultTolerances())
	require.NoError(t, err)

	const h = 1e-5
	for _, x := range [][]float64{{0.3, -0.2}, {1, 1}, {2.5, 2.4}, {4.6, 5.3}} {
		g, err := c.Gradient(x)
		require.NoError(t, err)
		for d := range x {
			xp := append([]float64(nil), x...)
			xm := append([]float64(nil), x...)
			xp[d] += h
			xm[d] -= h
			fp, _ := c.Value(xp)
			fm, _ := c.Value(xm)
			want := (fp - fm) / (2 * h)
			assert.InDelta(t, want, g[d], 1e-4*(1+abs(want)), "x=%v d=%d", x, d)
		}
	}

	_, err = c.Gradient([]float64{1})
	assert.ErrorIs(t, err, model.ErrDimensionMismatch)
	_, err = c.Value([]float64{1, 2, 3})
	assert.ErrorIs(t, err, model.ErrDimensionMismatch)
	_, err = c.Classify(nil)
	assert.ErrorIs(t, err, model.ErrDimensionMismatch)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}

func TestWriteRead_RoundTrip(t *testing.T) {
	t.Parallel()
	cm, sol := trained(t, 1e6)
	c, err := model.FromSolution(sol, cm, model.DefaultTolerances())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.txt")
	require.NoError(t, model.Save(path, c))
	back, err := model.Load(path)
	require.NoError(t, err)

	assert.Equal(t, c.Kernel(), back.Kernel())
	assert.Equal(t, c.Bias(), back.Bias())
	assert.Equal(t, c.NumAlpha(), back.NumAlpha())
	assert.Equal(t, c.NumBeta(), back.NumBeta())
	assert.Equal(t, c.Anchor(), back.Anchor())

	probes := append(heldOut(t, []float64{0, 0}), heldOut(t, []float64{5, 5})...)
	probes = append(probes, []float64{2.5, 2.5}, []float64{-3, 7})
	for _, x := range probes {
		f1, _ := c.Value(x)
		f2, _ := back.Value(x)
		assert.Equal(t, f1, f2, "value at %v", x)

		g1, _ := c.Gradient(x)
		g2, _ := back.Gradient(x)
		if diff := cmp.Diff(g1, g2, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("gradient at %v mismatch (-want +got):\n%s", x, diff)
		}
	}

	var a, b bytes.Buffer
	require.NoError(t, model.Write(&a, c))
	require.NoError(t, model.Write(&b, back))
	assert.Equal(t, a.String(), b.String())
}

func TestRead_NoBetaPlaceholder(t *testing.T) {
	t.Parallel()
	src := strings.Join([]string{
		"poly", "1", "2", "0.5", "2", "0",
		"0",
		"1 1",
		"1 -1",
		"0.0",
		"0",
		"1",
		"-1",
	}, "\n")
	c, err := model.Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 0, c.NumBeta())
	assert.Equal(t, kernel.Params{Kind: kernel.Poly, Lambda: 2}, c.Kernel())

	// f(x) = 0.5 + (x+1)² − (1−x)² = 0.5 + 4x
	f, err := c.Value([]float64{0.25})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, f, 1e-12)

	var buf bytes.Buffer
	require.NoError(t, model.Write(&buf, c))
	assert.Contains(t, buf.String(), "\n0.0\n")
}

func TestRead_Malformed(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"empty":       "",
		"bad kernel":  "sigmoid 1 1 0 1 0 0 1 1 0.0 0 0",
		"bad count":   "rbf 1 1 0 x",
		"no alphas":   "rbf 1 1 0 0 0 0 0.0 0",
		"truncated":   "rbf 1 1 0 1 0 0 1",
		"bad label":   "rbf 1 1 0 1 0 0 1 0.5 0.0 0 0",
		"bad number":  "rbf 1 1 0 1 0 0 one 1 0.0 0 0",
		"bad lambda":  "poly 1 1.5 0 1 0 0 1 1 0.0 0 0",
		"bad dim":     "rbf 0 1 0 1 0",
		"short point": "rbf 2 1 0 1 0 0 0 1 1 0.0 0 0 1",
		"huge dim":    "rbf 100000000000000 1 0 1 0",
		"huge alphas": "rbf 1 1 0 100000000000000 0 0 1",
		"huge betas":  "rbf 1 1 0 1 100000000000000 0 1 1 0.5",
		"trailing":    "rbf 1 1 0 1 0 0 1 1 0.0 0 0 9",
	}
	for name, src := range cases {
		_, err := model.Read(strings.NewReader(src))
		assert.Error(t, err, name)
	}
	for _, name := range []string{"huge dim", "huge alphas", "huge betas", "trailing"} {
		_, err := model.Read(strings.NewReader(cases[name]))
		assert.ErrorIs(t, err, model.ErrMalformed, name)
	}

	_, err := model.Read(strings.NewReader("rbf 1 1 0 1 0 0 1 0.5 0.0 0 0"))
	assert.ErrorIs(t, err, model.ErrMalformed)
	_, err = model.Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
