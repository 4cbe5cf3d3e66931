// SPDX-License-Identifier: MIT

// Package modulation assembles the coefficient matrix Q of the augmented SVM
// dual from prepared trajectories and a kernel.
//
// The variable vector is v = (α, β, γ) with sizes (M, P, N): one α per
// classification point, one β per Lyapunov point and one γ per coordinate of
// the target anchor. Q is the Gram matrix of the feature-space vectors
//
//	α_i ↦  y_i φ(x_i)
//	β_j ↦  Dφ(z_j)·v_j
//	γ_d ↦ −Dφ(x*)·e_d
//
// which gives the blocks
//
//	K[i,k]   =  y_i y_k k(x_i, x_k)
//	G[i,j]   =  y_i v_j·∂₂k(x_i, z_j)
//	Gs[i,d]  = −y_i ∂₂k(x_i, x*)_d
//	H[j,l]   =  v_jᵀ M(z_j, z_l) v_l
//	Hs[j,d]  = −v_jᵀ M(z_j, x*) e_d
//	Hss[d,e] =  M(x*, x*)_de
//
// with M = ∂²k/∂x1∂x2. Q is symmetric and positive semi-definite by
// construction.
//
// Build fans the upper triangle out over row chunks with a bounded errgroup;
// each cell is a pure function of its indices, so the result does not depend on
// the worker count.
package modulation
