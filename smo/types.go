// SPDX-License-Identifier: MIT

package smo

import (
	"fmt"
	"time"

	"github.com/katalvlaran/asvm/modulation"
)

// Status is the terminal state of a Solve call. All values are valid
// outcomes; the last solution is reported in every case.
type Status int

const (
	// Converged: an examine-all sweep accepted no step, so every variable
	// satisfies its KKT condition within the group tolerance.
	Converged Status = iota
	// IterationBudgetExceeded: MaxEval sweeps ran without convergence.
	IterationBudgetExceeded
	// TimeLimitExceeded: the wall-clock cap was hit.
	TimeLimitExceeded

	statusRunning Status = -1
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case IterationBudgetExceeded:
		return "iteration_budget_exceeded"
	case TimeLimitExceeded:
		return "time_limit_exceeded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// WarmStart reports what happened to the α warm start.
type WarmStart int

const (
	// WarmStartNone: no provider was configured.
	WarmStartNone WarmStart = iota
	// WarmStartAccepted: α was seeded from the provider.
	WarmStartAccepted
	// WarmStartRejected: the provider failed or returned an invalid vector;
	// α started from zero.
	WarmStartRejected
)

// String returns the warm start state name.
func (w WarmStart) String() string {
	switch w {
	case WarmStartNone:
		return "none"
	case WarmStartAccepted:
		return "accepted"
	case WarmStartRejected:
		return "rejected"
	default:
		return fmt.Sprintf("WarmStart(%d)", int(w))
	}
}

// Solution holds the three variable groups and the bias.
type Solution struct {
	Alpha []float64
	Beta  []float64
	Gamma []float64
	Bias  float64
}

// Clone returns a deep copy.
func (s Solution) Clone() Solution {
	return Solution{
		Alpha: append([]float64(nil), s.Alpha...),
		Beta:  append([]float64(nil), s.Beta...),
		Gamma: append([]float64(nil), s.Gamma...),
		Bias:  s.Bias,
	}
}

// EqualityResidual returns Σ y_i α_i.
func (s Solution) EqualityResidual(labels []float64) float64 {
	var r float64
	for i, a := range s.Alpha {
		r += labels[i] * a
	}

	return r
}

// StepCounts tallies step attempts.
type StepCounts struct {
	Alpha      int // accepted pair steps
	Beta       int
	Gamma      int
	Rejected   int // attempts rejected for any reason
	Degenerate int // rejections from non-positive curvature
}

// Accepted returns the number of accepted steps over all groups.
func (c StepCounts) Accepted() int { return c.Alpha + c.Beta + c.Gamma }

// Result is the outcome of Solve.
type Result struct {
	Solution  Solution
	Status    Status
	Sweeps    int
	Steps     StepCounts
	WarmStart WarmStart
	Objective float64 // ½ vᵀQv − Σ α at the returned solution
	Elapsed   time.Duration
}

// StepEvent describes one accepted step. For α pair steps Partner is the
// first index of the pair; otherwise Partner is -1.
type StepEvent struct {
	Group      modulation.Group
	Index      int
	Old, New   float64
	Partner    int
	PartnerOld float64
	PartnerNew float64
}

// SweepStats summarizes one sweep.
type SweepStats struct {
	Sweep      int // 1-based
	ExamineAll bool
	Changed    int
	Interior   int // interior α after the sweep
	Bias       float64
}

// Observer receives solver progress. Calls happen on the solving goroutine
// while the solver lock is held; implementations must not call back into the
// solver.
type Observer interface {
	OnStep(StepEvent)
	OnSweep(SweepStats)
	OnFinish(Result)
}

// ObserverFuncs adapts optional functions to Observer; nil fields are skipped.
type ObserverFuncs struct {
	Step   func(StepEvent)
	Sweep  func(SweepStats)
	Finish func(Result)
}

// OnStep implements Observer.
func (f ObserverFuncs) OnStep(e StepEvent) {
	if f.Step != nil {
		f.Step(e)
	}
}

// OnSweep implements Observer.
func (f ObserverFuncs) OnSweep(s SweepStats) {
	if f.Sweep != nil {
		f.Sweep(s)
	}
}

// OnFinish implements Observer.
func (f ObserverFuncs) OnFinish(r Result) {
	if f.Finish != nil {
		f.Finish(r)
	}
}
