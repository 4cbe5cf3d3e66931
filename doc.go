// Package asvm trains Augmented SVM classifiers: kernel SVMs whose decision
// function also acts as a Lyapunov function for the target class, so that
// following its gradient drives a point into the class equilibrium.
//
// 🚀 What is asvm?
//
//	A pure Go trainer built around one specialised incremental QP solver:
//		• Kernels: RBF and polynomial values, gradients and mixed Hessians
//		• Modulation matrix: the block-structured dual Hessian, built in parallel
//		• SMO solver: α pair steps, β/γ Newton steps, cached residuals
//		• Warm start: a libsvm-style binary C-SVC
//		• Classifier: sparse snapshot with value, gradient and a text format
//
// Under the hood, everything is organized under these subpackages:
//
//	kernel/      - k(x1,x2) and its analytic derivatives
//	trajectory/  - datasets, preparation into training points, file format
//	matrix/      - numeric validators and the symmetric row view
//	modulation/  - CoefficientMatrix assembly
//	smo/         - the solver, its options, statuses and observers
//	csvc/        - binary C-SVC used as InitialGuessProvider
//	model/       - Classifier, FromSolution, Read/Write
//	config/      - solver parameter files (YAML or legacy `key value`)
//	metrics/     - Prometheus observer
//	cmd/asvm/    - the trainer CLI
//
// Train runs the whole pipeline:
//
//	ds, _ := trajectory.LoadDataset("data.txt")
//	rep, err := asvm.Train(ctx, ds, asvm.TrainConfig{
//		Kernel: kernel.Params{Kind: kernel.RBF, Lambda: kernel.LambdaFromWidth(0.5)},
//		Solver: config.Default(),
//	})
//
//	go get github.com/katalvlaran/asvm
package asvm
