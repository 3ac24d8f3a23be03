package sim

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/particles/vmath"
)

// State is the host copy of the two parallel particle arrays. Index i of
// Positions and Velocities describe the same particle.
type State struct {
	Positions  []vmath.Vec4f
	Velocities []vmath.Vec4f
}

// NewState pairs the two arrays.
func NewState(positions, velocities []vmath.Vec4f) (*State, error) {
	if len(positions) != len(velocities) {
		return nil, ErrLengthMismatch
	}
	return &State{Positions: positions, Velocities: velocities}, nil
}

// Len returns the particle count.
func (s *State) Len() int { return len(s.Positions) }

// Speeds returns |velocity.xyz| for every particle.
func (s *State) Speeds() []float64 {
	out := make([]float64, len(s.Velocities))
	for i, v := range s.Velocities {
		out[i] = vmath.XYZ(v).Length()
	}
	return out
}

// Lattice places side³ particles on a cubic grid with the given spacing,
// centred on the origin. The w component is 1.
func Lattice(side int, spacing float32) []vmath.Vec4f {
	if side <= 0 {
		return nil
	}
	out := make([]vmath.Vec4f, 0, side*side*side)
	offset := float32(side-1) * spacing / 2
	for z := 0; z < side; z++ {
		for y := 0; y < side; y++ {
			for x := 0; x < side; x++ {
				out = append(out, vmath.NewVec4(
					float32(x)*spacing-offset,
					float32(y)*spacing-offset,
					float32(z)*spacing-offset,
					1,
				))
			}
		}
	}
	return out
}

// RandomVelocities returns n velocities with xyz drawn uniformly from
// [-spread, spread] and w = 0. A zero spread yields zero vectors without
// consuming the generator.
func RandomVelocities(n int, spread float32, rng *rand.Rand) []vmath.Vec4f {
	out := make([]vmath.Vec4f, n)
	if spread == 0 {
		return out
	}
	for i := range out {
		out[i] = vmath.NewVec4(
			(rng.Float32()*2-1)*spread,
			(rng.Float32()*2-1)*spread,
			(rng.Float32()*2-1)*spread,
			0,
		)
	}
	return out
}

// SideForCount returns the smallest lattice side whose cube holds at
// least n particles.
func SideForCount(n int) int {
	side := int(math.Cbrt(float64(n)))
	for side*side*side < n {
		side++
	}
	return side
}
