package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// synthData writes the default two-class dataset into dir.
func synthData(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "data.txt")
	var out, errOut bytes.Buffer
	code := run([]string{"synth", "--output", path}, &out, &errOut)
	require.Equal(t, exitOK, code, errOut.String())

	return path
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestTrainEval_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	data := synthData(t, dir)
	param := writeFile(t, dir, "param.yaml", "C: 100\nmax_eval: 10000\n")
	modelPath := filepath.Join(dir, "model.txt")
	metricsPath := filepath.Join(dir, "asvm.prom")
	tracePath := filepath.Join(dir, "trace.json")

	var out, errOut bytes.Buffer
	code := run([]string{"train",
		"--data", data, "--output", modelPath, "--param", param,
		"--sigma", "0.7071067811865476", "--tclass", "0", "--warm-start",
		"--metrics-file", metricsPath, "--trace-file", tracePath,
	}, &out, &errOut)
	require.Contains(t, []int{exitOK, exitBudget}, code, errOut.String())
	assert.Contains(t, out.String(), "sweeps=")
	assert.Contains(t, errOut.String(), `"run_id"`)
	assert.FileExists(t, modelPath)

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "asvm_smo_runs_total")
	assert.Contains(t, string(prom), "asvm_modulation_matrix_dim")

	spans, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	assert.Contains(t, string(spans), "smo.Solve")
	assert.Contains(t, string(spans), "asvm.Train")

	probes := writeFile(t, dir, "probes.txt", "# near the target\n0.2 0.1\n\n5.1 4.9\n")
	out.Reset()
	errOut.Reset()
	code = run([]string{"eval", "--model", modelPath, "--points", probes}, &out, &errOut)
	require.Equal(t, exitOK, code, errOut.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	first, second := strings.Fields(lines[0]), strings.Fields(lines[1])
	require.Len(t, first, 4)
	require.Len(t, second, 4)
	assert.Equal(t, "1", first[1])
	assert.Equal(t, "-1", second[1])
}

func TestTrain_BudgetExhausted(t *testing.T) {
	dir := t.TempDir()
	data := synthData(t, dir)
	param := writeFile(t, dir, "param.txt", "C 100\nmax_eval 1\n")
	modelPath := filepath.Join(dir, "model.txt")

	var out, errOut bytes.Buffer
	code := run([]string{"train", "--data", data, "--output", modelPath, "--param", param}, &out, &errOut)
	assert.Equal(t, exitBudget, code, errOut.String())
	assert.Contains(t, out.String(), "iteration_budget_exceeded")
	assert.FileExists(t, modelPath)
}

func TestTrain_InputErrors(t *testing.T) {
	dir := t.TempDir()
	data := synthData(t, dir)
	modelPath := filepath.Join(dir, "model.txt")
	bad := writeFile(t, dir, "bad.txt", "2 2\n1\n1\n0 0\n")
	huge := writeFile(t, dir, "huge.txt", "100000000000000 2\n")
	hugeModel := writeFile(t, dir, "huge-model.txt", "rbf 100000000000000 1 0 1 0\n")

	cases := map[string][]string{
		"missing data":  {"train", "--output", modelPath},
		"no such file":  {"train", "--data", filepath.Join(dir, "nope"), "--output", modelPath},
		"short traj":    {"train", "--data", bad, "--output", modelPath},
		"huge header":   {"train", "--data", huge, "--output", modelPath},
		"bad kernel":    {"train", "--data", data, "--output", modelPath, "--kernel", "sigmoid"},
		"bad sigma":     {"train", "--data", data, "--output", modelPath, "--sigma", "0"},
		"bad degree":    {"train", "--data", data, "--output", modelPath, "--kernel", "poly", "--degree", "0"},
		"bad target":    {"train", "--data", data, "--output", modelPath, "--tclass", "7"},
		"bad param":     {"train", "--data", data, "--output", modelPath, "--param", writeFile(t, dir, "p.txt", "C -1\n")},
		"eval no model": {"eval", "--model", filepath.Join(dir, "nope"), "--points", data},
		"eval huge dim": {"eval", "--model", hugeModel, "--points", data},
		"synth noise":   {"synth", "--output", filepath.Join(dir, "s.txt"), "--noise", "-1"},
	}
	for name, args := range cases {
		var out, errOut bytes.Buffer
		assert.Equal(t, exitError, run(args, &out, &errOut), name)
		assert.Contains(t, errOut.String(), "asvm:", name)
	}
	assert.NoFileExists(t, modelPath)
}

func TestEval_BadPoints(t *testing.T) {
	dir := t.TempDir()
	modelPath := writeFile(t, dir, "model.txt", "rbf\n2\n1\n0\n1\n0\n0 0\n1\n1\n0.0\n0 0\n1 1\n")

	var out, errOut bytes.Buffer
	code := run([]string{"eval", "--model", modelPath, "--points", writeFile(t, dir, "p.txt", "1 x\n")}, &out, &errOut)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut.String(), "not a number")

	errOut.Reset()
	code = run([]string{"eval", "--model", modelPath, "--points", writeFile(t, dir, "q.txt", "1 2 3\n")}, &out, &errOut)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut.String(), "dimension mismatch")
}
