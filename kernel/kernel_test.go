package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/asvm/kernel"
)

// fdStep is the central-difference step used to cross-check derivatives.
const fdStep = 1e-5

var (
	rbf  = kernel.Params{Kind: kernel.RBF, Lambda: 0.7}
	poly = kernel.Params{Kind: kernel.Poly, Lambda: 3}
	xa   = []float64{0.3, -1.2, 0.5}
	xb   = []float64{-0.4, 0.1, 0.9}
)

// numGrad approximates ∂k/∂x_wrt by central differences.
func numGrad(t *testing.T, x1, x2 []float64, p kernel.Params, wrt kernel.Arg) []float64 {
	t.Helper()
	out := make([]float64, len(x1))
	for i := range x1 {
		a1 := append([]float64(nil), x1...)
		a2 := append([]float64(nil), x2...)
		b1 := append([]float64(nil), x1...)
		b2 := append([]float64(nil), x2...)
		if wrt == kernel.First {
			a1[i] += fdStep
			b1[i] -= fdStep
		} else {
			a2[i] += fdStep
			b2[i] -= fdStep
		}
		fp, err := kernel.Value(a1, a2, p)
		require.NoError(t, err)
		fm, err := kernel.Value(b1, b2, p)
		require.NoError(t, err)
		out[i] = (fp - fm) / (2 * fdStep)
	}

	return out
}

// TestValue_ClosedForms checks both families against hand-computed values.
func TestValue_ClosedForms(t *testing.T) {
	v, err := kernel.Value([]float64{0, 0}, []float64{1, 1}, kernel.Params{Kind: kernel.RBF, Lambda: 1})
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-2), v, 1e-15)

	v, err = kernel.Value([]float64{1, 2}, []float64{3, 4}, kernel.Params{Kind: kernel.Poly, Lambda: 2})
	require.NoError(t, err)
	assert.InDelta(t, 144.0, v, 1e-12) // (1·3 + 2·4 + 1)²

	v, err = kernel.Value(xa, xa, rbf)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "RBF of identical points is exactly 1")
}

// TestValue_Errors verifies sentinel errors for malformed input.
func TestValue_Errors(t *testing.T) {
	_, err := kernel.Value([]float64{1}, []float64{1, 2}, rbf)
	assert.ErrorIs(t, err, kernel.ErrDimensionMismatch)

	_, err = kernel.Value(nil, nil, rbf)
	assert.ErrorIs(t, err, kernel.ErrEmptyVector)

	_, err = kernel.Value(xa, xb, kernel.Params{Kind: kernel.RBF, Lambda: -1})
	assert.ErrorIs(t, err, kernel.ErrBadLambda)

	_, err = kernel.Value(xa, xb, kernel.Params{Kind: kernel.Poly, Lambda: 2.5})
	assert.ErrorIs(t, err, kernel.ErrBadLambda)

	_, err = kernel.Value(xa, xb, kernel.Params{Kind: kernel.Kind(9), Lambda: 1})
	assert.ErrorIs(t, err, kernel.ErrUnknownKind)

	_, err = kernel.Gradient(xa, xb[:2], rbf, kernel.First)
	assert.ErrorIs(t, err, kernel.ErrDimensionMismatch)

	_, err = kernel.NewEngine(rbf, 0)
	assert.ErrorIs(t, err, kernel.ErrEmptyVector)
}

// TestGradient_MatchesFiniteDifferences cross-checks ∂k/∂x1 and ∂k/∂x2.
func TestGradient_MatchesFiniteDifferences(t *testing.T) {
	for _, p := range []kernel.Params{rbf, poly} {
		for _, wrt := range []kernel.Arg{kernel.First, kernel.Second} {
			got, err := kernel.Gradient(xa, xb, p, wrt)
			require.NoError(t, err)
			want := numGrad(t, xa, xb, p, wrt)
			assert.InDeltaSlice(t, want, got, 1e-6, "kind=%v wrt=%v", p.Kind, wrt)
		}
	}
}

// TestHessian_MatchesFiniteDifferences differentiates the analytic gradient.
func TestHessian_MatchesFiniteDifferences(t *testing.T) {
	for _, p := range []kernel.Params{rbf, poly} {
		h, err := kernel.Hessian(xa, xb, p)
		require.NoError(t, err)
		m, err := kernel.MixedHessian(xa, xb, p)
		require.NoError(t, err)

		for b := range xa {
			up := append([]float64(nil), xa...)
			dn := append([]float64(nil), xa...)
			up[b] += fdStep
			dn[b] -= fdStep
			gp, _ := kernel.Gradient(up, xb, p, kernel.First)
			gm, _ := kernel.Gradient(dn, xb, p, kernel.First)
			for a := range xa {
				assert.InDelta(t, (gp[a]-gm[a])/(2*fdStep), h.At(a, b), 1e-6, "H[%d,%d]", a, b)
			}

			// Mixed: differentiate ∂k/∂x1 along x2_b.
			up2 := append([]float64(nil), xb...)
			dn2 := append([]float64(nil), xb...)
			up2[b] += fdStep
			dn2[b] -= fdStep
			gp, _ = kernel.Gradient(xa, up2, p, kernel.First)
			gm, _ = kernel.Gradient(xa, dn2, p, kernel.First)
			for a := range xa {
				assert.InDelta(t, (gp[a]-gm[a])/(2*fdStep), m.At(a, b), 1e-6, "M[%d,%d]", a, b)
			}
		}
	}
}

// TestMixedHessian_RBFIsNegatedHessian pins the RBF identity M = −H.
func TestMixedHessian_RBFIsNegatedHessian(t *testing.T) {
	h, err := kernel.Hessian(xa, xb, rbf)
	require.NoError(t, err)
	m, err := kernel.MixedHessian(xa, xb, rbf)
	require.NoError(t, err)
	for a := range xa {
		for b := range xa {
			assert.InDelta(t, -h.At(a, b), m.At(a, b), 1e-15)
		}
	}

	// At coincident points M = 2λ I.
	m, err = kernel.MixedHessian(xa, xa, rbf)
	require.NoError(t, err)
	assert.InDelta(t, 2*rbf.Lambda, m.At(1, 1), 1e-15)
	assert.Equal(t, 0.0, m.At(0, 2))
}

// TestEngine_ContractedFormsAgree verifies MixedQuad / MixedApplyTo /
// DirectionalSecond against the materialized matrices.
func TestEngine_ContractedFormsAgree(t *testing.T) {
	u := []float64{0.6, 0.8, 0}
	v := []float64{0, -0.6, 0.8}
	for _, p := range []kernel.Params{rbf, poly, {Kind: kernel.Poly, Lambda: 1}} {
		e, err := kernel.NewEngine(p, 3)
		require.NoError(t, err)

		m := e.MixedHessian(xa, xb)
		var want float64
		mv := make([]float64, 3)
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				want += u[a] * m.At(a, b) * v[b]
				mv[a] += m.At(a, b) * v[b]
			}
		}
		assert.InDelta(t, want, e.MixedQuad(u, xa, xb, v), 1e-12, "kind=%v", p.Kind)
		assert.InDeltaSlice(t, mv, e.MixedApplyTo(make([]float64, 3), xa, xb, v), 1e-12)

		g := e.Gradient(xa, xb, kernel.Second)
		assert.InDelta(t, u[0]*g[0]+u[1]*g[1]+u[2]*g[2], e.DirectionalSecond(xa, xb, u), 1e-12)
	}
}

// TestParseKind covers names, aliases and the error path.
func TestParseKind(t *testing.T) {
	k, err := kernel.ParseKind("RBF")
	require.NoError(t, err)
	assert.Equal(t, kernel.RBF, k)

	k, err = kernel.ParseKind(" poly ")
	require.NoError(t, err)
	assert.Equal(t, kernel.Poly, k)
	assert.Equal(t, "poly", k.String())

	_, err = kernel.ParseKind("sigmoid")
	assert.ErrorIs(t, err, kernel.ErrUnknownKind)
}

// TestLambdaFromWidth pins λ = 1/(2σ²).
func TestLambdaFromWidth(t *testing.T) {
	assert.InDelta(t, 1.0, kernel.LambdaFromWidth(math.Sqrt(0.5)), 1e-15)
	assert.True(t, math.IsInf(kernel.LambdaFromWidth(0), 1))
}
