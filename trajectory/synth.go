// SPDX-License-Identifier: MIT
// Package: trajectory
//
// synth.go - deterministic converging-trajectory generator.
//
// Purpose:
//   - Produce straight-line trajectories that start on a sphere of the given
//     radius around a center and march into it, for tests and demos.
//   - Optional Gaussian noise on every point except the final one.
//
// Determinism policy:
//   - If an RNG was supplied (WithRand/WithSeed) it is used as a shared stream.
//   - Else noise draws come from rand.New(rand.NewSource(DefaultSeed)).
//   - Start directions are fixed: evenly spaced angles in the first coordinate
//     plane, offset by WithPhase; further coordinates stay on the center.

package trajectory

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultSeed seeds the local RNG when no option supplies one.
const DefaultSeed int64 = 1

// panic messages for nonsensical option values.
const (
	panicRandNil     = "trajectory: WithRand(nil)"
	panicNoiseNeg    = "trajectory: WithNoise(sigma<0)"
	panicPhaseNonFin = "trajectory: WithPhase(non-finite)"
)

// SynthOption customizes Converging.
type SynthOption func(*synthConfig)

type synthConfig struct {
	rng        *rand.Rand // nil → local DefaultSeed stream
	noiseSigma float64    // >= 0
	phase      float64    // radians added to every start angle
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) SynthOption {
	if r == nil {
		panic(panicRandNil)
	}

	return func(c *synthConfig) { c.rng = r }
}

// WithSeed creates a new seeded RNG (deterministic).
func WithSeed(seed int64) SynthOption {
	return func(c *synthConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithNoise sets the Gaussian noise sigma (>= 0). Panics if sigma < 0.
func WithNoise(sigma float64) SynthOption {
	if sigma < 0 || math.IsNaN(sigma) {
		panic(panicNoiseNeg)
	}

	return func(c *synthConfig) { c.noiseSigma = sigma }
}

// WithPhase rotates all start angles by phi radians.
func WithPhase(phi float64) SynthOption {
	if math.IsNaN(phi) || math.IsInf(phi, 0) {
		panic(panicPhaseNonFin)
	}

	return func(c *synthConfig) { c.phase = phi }
}

// Converging returns count trajectories of steps+1 points each. Trajectory k
// starts at center + radius·u_k, with u_k the unit vector at angle
// phase + 2πk/count in the (x0, x1) plane (along ±x0 when len(center) == 1),
// and point t sits at radius·(1 − t/steps). The final point is the center.
//
// Errors: ErrBadDimension for an empty center, ErrBadSize for count < 1,
// steps < 1 or a non-positive radius.
// Complexity: O(count · steps · dim).
func Converging(center []float64, radius float64, count, steps int, opts ...SynthOption) ([]Trajectory, error) {
	if len(center) == 0 {
		return nil, fmt.Errorf("trajectory.Converging: %w", ErrBadDimension)
	}
	if count < 1 || steps < 1 || !(radius > 0) {
		return nil, fmt.Errorf("trajectory.Converging: count=%d steps=%d radius=%g: %w",
			count, steps, radius, ErrBadSize)
	}

	cfg := synthConfig{}
	for _, fn := range opts {
		if fn != nil {
			fn(&cfg)
		}
	}
	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(DefaultSeed))
	}

	dim := len(center)
	out := make([]Trajectory, count)

	var (
		k, t, d int
		theta   float64 // start angle of trajectory k
		r       float64 // remaining radius at step t
	)
	for k = 0; k < count; k++ {
		theta = cfg.phase + 2*math.Pi*float64(k)/float64(count)
		pts := make([][]float64, steps+1)
		for t = 0; t <= steps; t++ {
			r = radius * (1 - float64(t)/float64(steps))
			p := append([]float64(nil), center...)
			if dim == 1 {
				p[0] += r * math.Copysign(1, math.Cos(theta))
			} else {
				p[0] += r * math.Cos(theta)
				p[1] += r * math.Sin(theta)
			}
			if cfg.noiseSigma > 0 && t < steps {
				for d = 0; d < dim; d++ {
					p[d] += cfg.noiseSigma * rng.NormFloat64()
				}
			}
			pts[t] = p
		}
		out[k] = Trajectory{Points: pts}
	}

	return out, nil
}
