// Package csvc trains a plain binary C-SVC (libsvm's Solver with the
// second-order working set selection of Fan, Chen and Lin, without shrinking)
// and exposes it as an smo.InitialGuessProvider: its dual coefficients seed
// the α group of the augmented problem.
//
// The dual is
//
//	min ½ αᵀQα − eᵀα   s.t.  yᵀα = 0, 0 ≤ α ≤ C,   Q_ij = y_i y_j k(x_i, x_j)
//
// and the decision function is f(x) = Σ α_i y_i k(x_i, x) + b.
package csvc
