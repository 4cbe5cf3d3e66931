// Package smo solves the augmented SVM dual
//
//	min  ½ vᵀQv − Σ α_i      v = (α, β, γ)
//	s.t. Σ y_i α_i = 0,  0 ≤ α_i ≤ C,  0 ≤ β_j ≤ C,  γ free
//
// with a specialised Sequential Minimal Optimization.
//
// 🧭 Sweep state machine
//
// The solver alternates between examine-all sweeps (every variable) and
// examine-active sweeps (interior α and β, every γ). An examine-active sweep
// with no accepted step switches back to examine-all; an examine-all sweep
// with no accepted step means convergence. The bias is recomputed after each
// sweep.
//
// 🔧 Steps
//
//   - α: Platt's two-variable step. The partner is the cached minimum- or
//     maximum-error interior index farther from E2, falling back to interior
//     then bound scans that start right after the candidate.
//   - β: clamped Newton step on one coordinate.
//   - γ: unconstrained Newton step on one coordinate.
//
// Every accepted step updates the residual caches of the interior α and β
// variables by a rank-one correction from one or two rows of Q. Residuals of
// bound variables are recomputed from the row when needed.
//
// ⏱️ Termination
//
// Converged, IterationBudgetExceeded (MaxEval sweeps) and TimeLimitExceeded
// are outcomes reported in Result.Status; context cancellation is an error.
// Converged means an examine-all sweep found no variable outside its KKT
// tolerance: ClassificationTol for α, LyapunovTol for β and γ. Steps smaller
// than rounding noise are rejected, so a violation above the tolerance is
// never skipped as "too small to move".
//
// A Solver is single-threaded: Solve holds the solver mutex for its duration.
package smo
