// Package kernel implements the kernel functions used by the Augmented SVM
// together with their analytic first and second derivatives.
//
// 🚀 What lives here?
//
//	Two kernel families share one API:
//	  • RBF  - k(x1, x2) = exp(-λ‖x1 − x2‖²)
//	  • Poly - k(x1, x2) = (x1·x2 + 1)^λ   (λ is an integer degree ≥ 1)
//
//	For each family the package provides:
//	  • Value         - k(x1, x2)
//	  • Gradient      - ∂k/∂x1 or ∂k/∂x2 (choose with First/Second)
//	  • Hessian       - ∂²k/∂x1² (dim×dim, symmetric)
//	  • MixedHessian  - ∂²k/∂x1∂x2 (dim×dim), the block used by the
//	                    Lyapunov and anchor terms of the modulation matrix.
//
// ⚙️ Usage:
//
//	p := kernel.Params{Kind: kernel.RBF, Lambda: kernel.LambdaFromWidth(0.5)}
//	v, err := kernel.Value(x, y, p)
//
//	// Hot loops: validate once, then call the unchecked Engine methods.
//	eng, err := kernel.NewEngine(p, 2)
//	v = eng.Value(x, y)
//
// All functions are pure and deterministic. Package-level functions return
// ErrDimensionMismatch on inconsistent input; Engine methods assume inputs
// of length Dim() and are meant for code that validated its data up front.
package kernel
