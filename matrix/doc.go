// SPDX-License-Identifier: MIT

// Package matrix provides the numeric guard rails around gonum matrices used by
// the trainer: sentinel errors, a small numeric policy (epsilon and finite-value
// validation) and composable validators.
//
// 🚀 What is inside
//
//   - Validators (ValidateNotNil, ValidateSquare, ValidateSymmetric,
//     ValidateFinite, ValidateNonNegativeDiagonal, ValidateVecLen) returning
//     plain sentinels wrapped with the validator name.
//   - ValidateCoefficient, the composite check run on every freshly built
//     coefficient matrix before it reaches the solver.
//   - Symmetric, a read-only accessor over the packed upper triangle of a
//     *mat.SymDense for the O(1) element reads of the SMO inner loops.
//
// ⚙️ Numeric policy
//
//	eps            DefaultEpsilon   (WithEpsilon)
//	validateNaNInf true             (WithNoValidateNaNInf to relax)
//
// All checks are deterministic (fixed row-major scan order) and allocate
// nothing.
package matrix
