// Package sim holds the host side of the particle simulation: the
// initial particle state, the integration constants, dispatch sizing and
// a CPU reference implementation of the per-particle kernel.
package sim

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/particles/vmath"
)

// ErrLengthMismatch is returned when position and velocity arrays differ
// in length.
var ErrLengthMismatch = errors.New("sim: position and velocity lengths differ")

// ErrLocalSize is returned for a dispatch group size that is not a
// positive power of two.
var ErrLocalSize = errors.New("sim: local size must be a positive power of two")

// Params are the integration constants. They are fixed for a run and are
// compiled into the GPU kernel as defines.
type Params struct {
	Damping      float32 // velocity loss per second
	AttractorK   float32 // attractor strength
	EpsilonFloor float32 // scales the attractor distance term
	LocalSize    int     // lanes per dispatch group
}

// DefaultParams returns the tuning used when no config overrides it.
func DefaultParams() Params {
	return Params{
		Damping:      0.9,
		AttractorK:   2000,
		EpsilonFloor: 1,
		LocalSize:    64,
	}
}

// Validate checks the constants the kernel cannot recover from.
func (p Params) Validate() error {
	if !IsPowerOfTwo(p.LocalSize) {
		return fmt.Errorf("%w: %d", ErrLocalSize, p.LocalSize)
	}
	if p.EpsilonFloor <= 0 {
		return fmt.Errorf("sim: epsilon floor must be positive, got %v", p.EpsilonFloor)
	}
	if p.Damping < 0 {
		return fmt.Errorf("sim: damping must not be negative, got %v", p.Damping)
	}
	return nil
}

// Uniforms are the per-frame kernel inputs.
type Uniforms struct {
	DT                float32
	AttractorActive   bool
	AttractorPosition vmath.Vec3f
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Groups returns the number of dispatch groups of size local needed to
// cover n lanes.
func Groups(n, local int) int {
	if n <= 0 {
		return 0
	}
	return (n + local - 1) / local
}
