package kernel

import (
	"fmt"
	"math"
	"strings"
)

// Kind selects the kernel family.
type Kind int

const (
	// RBF is the radial-basis kernel exp(-λ‖x1 − x2‖²).
	RBF Kind = iota

	// Poly is the inhomogeneous polynomial kernel (x1·x2 + 1)^λ.
	Poly
)

// Textual kernel names as used in serialized models.
const (
	nameRBF  = "rbf"
	namePoly = "poly"
)

// String returns the serialized name of the kernel family.
func (k Kind) String() string {
	switch k {
	case RBF:
		return nameRBF
	case Poly:
		return namePoly
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a serialized kernel name back to its Kind.
// Matching is case-insensitive; "gaussian" is accepted as an alias of "rbf".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case nameRBF, "gaussian":
		return RBF, nil
	case namePoly, "polynomial":
		return Poly, nil
	default:
		return 0, kernelErrorf("ParseKind", fmt.Errorf("%q: %w", s, ErrUnknownKind))
	}
}

// Arg selects which kernel argument a first derivative is taken against.
type Arg int

const (
	// First differentiates with respect to x1.
	First Arg = iota
	// Second differentiates with respect to x2.
	Second
)

// Params holds the kernel configuration shared by the builder, the solver
// and the classifier.
type Params struct {
	Kind   Kind
	Lambda float64 // RBF: inverse squared width; Poly: degree
}

// Validate checks Lambda against the domain of the selected family.
func (p Params) Validate() error {
	if math.IsNaN(p.Lambda) || math.IsInf(p.Lambda, 0) {
		return kernelErrorf("Params.Validate", ErrBadLambda)
	}
	switch p.Kind {
	case RBF:
		if p.Lambda <= 0 {
			return kernelErrorf("Params.Validate", ErrBadLambda)
		}
	case Poly:
		if p.Lambda < 1 || p.Lambda != math.Trunc(p.Lambda) {
			return kernelErrorf("Params.Validate", ErrBadLambda)
		}
	default:
		return kernelErrorf("Params.Validate", ErrUnknownKind)
	}

	return nil
}

// LambdaFromWidth converts an RBF width σ into λ = 1/(2σ²).
// A non-positive width yields +Inf, which Validate rejects.
func LambdaFromWidth(width float64) float64 {
	if width <= 0 {
		return math.Inf(1)
	}

	return 1 / (2 * width * width)
}
