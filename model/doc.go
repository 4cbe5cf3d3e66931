// Package model holds the trained Augmented SVM classifier: a sparse,
// immutable snapshot of the support points that survived a relative
// tolerance filter, with the decision function
//
//	f(x) = b + Σ y_i α_i k(x, x_i) + Σ β_j v_j·∂₂k(x, z_j) − Σ γ_d ∂₂k(x, x*)_d
//
// and its analytic gradient. A Classifier is created once by FromSolution
// (or Read) and is safe for concurrent use.
package model
