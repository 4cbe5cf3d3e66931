// SPDX-License-Identifier: MIT

// Package metrics exports solver progress as Prometheus metrics.
//
// A Collector owns its own registry, so several trainings in one process do
// not collide. It implements smo.Observer; the CLI writes the registry to a
// node_exporter textfile once training ends.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/asvm/smo"
)

const namespace = "asvm"

// Collector records solver and builder metrics.
type Collector struct {
	reg *prometheus.Registry

	steps      *prometheus.CounterVec
	rejected   prometheus.Counter
	degenerate prometheus.Counter
	sweeps     *prometheus.CounterVec
	interior   prometheus.Gauge
	bias       prometheus.Gauge
	objective  prometheus.Gauge
	runs       *prometheus.CounterVec
	solveTime  prometheus.Histogram
	buildTime  prometheus.Histogram
	matrixDim  prometheus.Gauge
}

var _ smo.Observer = (*Collector)(nil)

// New returns a Collector backed by a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collector{
		reg: reg,
		steps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "smo", Name: "steps_total",
			Help: "Accepted solver steps by variable group.",
		}, []string{"group"}),
		rejected: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "smo", Name: "rejected_steps_total",
			Help: "Step attempts rejected by the solver.",
		}),
		degenerate: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "smo", Name: "degenerate_steps_total",
			Help: "Step attempts rejected for non-positive curvature.",
		}),
		sweeps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "smo", Name: "sweeps_total",
			Help: "Completed sweeps by mode.",
		}, []string{"mode"}),
		interior: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "smo", Name: "interior_alphas",
			Help: "Interior alpha variables after the last sweep.",
		}),
		bias: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "smo", Name: "bias",
			Help: "Bias after the last sweep.",
		}),
		objective: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "smo", Name: "objective",
			Help: "Dual objective of the last finished run.",
		}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "smo", Name: "runs_total",
			Help: "Finished solver runs by terminal status.",
		}, []string{"status"}),
		solveTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "smo", Name: "solve_seconds",
			Help:    "Wall-clock time of solver runs.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		buildTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "modulation", Name: "build_seconds",
			Help:    "Wall-clock time of coefficient matrix assembly.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		matrixDim: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "modulation", Name: "matrix_dim",
			Help: "Order of the last assembled coefficient matrix.",
		}),
	}
}

// Gatherer exposes the registry.
func (c *Collector) Gatherer() prometheus.Gatherer { return c.reg }

// OnStep implements smo.Observer.
func (c *Collector) OnStep(e smo.StepEvent) {
	c.steps.WithLabelValues(e.Group.String()).Inc()
}

// OnSweep implements smo.Observer.
func (c *Collector) OnSweep(s smo.SweepStats) {
	mode := "active"
	if s.ExamineAll {
		mode = "all"
	}
	c.sweeps.WithLabelValues(mode).Inc()
	c.interior.Set(float64(s.Interior))
	c.bias.Set(s.Bias)
}

// OnFinish implements smo.Observer.
func (c *Collector) OnFinish(r smo.Result) {
	c.runs.WithLabelValues(r.Status.String()).Inc()
	c.rejected.Add(float64(r.Steps.Rejected))
	c.degenerate.Add(float64(r.Steps.Degenerate))
	c.objective.Set(r.Objective)
	c.solveTime.Observe(r.Elapsed.Seconds())
}

// ObserveBuild records one coefficient matrix assembly of order dim.
func (c *Collector) ObserveBuild(d time.Duration, dim int) {
	c.buildTime.Observe(d.Seconds())
	c.matrixDim.Set(float64(dim))
}

// WriteTextfile writes the registry to path in the text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.reg); err != nil {
		return fmt.Errorf("metrics.WriteTextfile: %w", err)
	}

	return nil
}
