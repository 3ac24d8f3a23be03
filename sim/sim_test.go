package sim

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/particles/vmath"
)

func TestStepParticleDamping(t *testing.T) {
	p := DefaultParams()
	p.Damping = 0.9
	u := Uniforms{DT: 1}

	pos, vel := StepParticle(p, u, vmath.NewVec4[float32](0, 0, 0, 1), vmath.NewVec4[float32](10, 0, 0, 0))

	assert.True(t, vel.ApproxEquals(vmath.NewVec4[float32](1, 0, 0, 0), 1e-5), "velocity %v", vel)
	assert.True(t, pos.ApproxEquals(vmath.NewVec4[float32](1, 0, 0, 1), 1e-5), "position %v", pos)
}

func TestStepParticleAttractorClampsDistance(t *testing.T) {
	p := Params{Damping: 0, AttractorK: 8, EpsilonFloor: 2, LocalSize: 64}
	u := Uniforms{DT: 0.5, AttractorActive: true, AttractorPosition: vmath.NewVec3[float32](0.5, 0, 0)}

	// Distance 0.5 is floored to 1: accel = 8 / (2 * 1) = 4.
	_, vel := StepParticle(p, u, vmath.NewVec4[float32](0, 0, 0, 1), vmath.Vec4f{})
	assert.InDelta(t, 2, vel.X(), 1e-6)
	assert.Zero(t, vel.W())
}

func TestReferenceAttractorSquare(t *testing.T) {
	positions := []vmath.Vec4f{
		vmath.NewVec4[float32](0, 0, 0, 1),
		vmath.NewVec4[float32](1, 0, 0, 1),
		vmath.NewVec4[float32](0, 1, 0, 1),
		vmath.NewVec4[float32](1, 1, 0, 1),
	}
	state, err := NewState(positions, make([]vmath.Vec4f, 4))
	require.NoError(t, err)

	ref := NewReference(DefaultParams(), state, 2)
	err = ref.Step(context.Background(), Uniforms{
		DT:                0.016,
		AttractorActive:   true,
		AttractorPosition: vmath.NewVec3[float32](0, 0, 10),
	})
	require.NoError(t, err)

	first := vmath.XYZ(state.Velocities[0]).Length()
	for i, v := range state.Velocities {
		dir := vmath.XYZ(v).Normalized()
		assert.Greater(t, dir.Z(), float32(0.98), "particle %d velocity %v", i, v)
		// Off-axis particles are up to 1% farther away.
		assert.InEpsilon(t, first, vmath.XYZ(v).Length(), 0.02, "particle %d", i)
	}
}

func TestReferenceAttractorSymmetric(t *testing.T) {
	positions := []vmath.Vec4f{
		vmath.NewVec4[float32](-1, -1, 0, 1),
		vmath.NewVec4[float32](1, -1, 0, 1),
		vmath.NewVec4[float32](-1, 1, 0, 1),
		vmath.NewVec4[float32](1, 1, 0, 1),
	}
	state, err := NewState(positions, make([]vmath.Vec4f, 4))
	require.NoError(t, err)

	err = NewReference(DefaultParams(), state, 1).Step(context.Background(), Uniforms{
		DT:                0.016,
		AttractorActive:   true,
		AttractorPosition: vmath.NewVec3[float32](0, 0, 10),
	})
	require.NoError(t, err)

	want := vmath.XYZ(state.Velocities[0]).Length()
	for i, v := range state.Velocities {
		assert.InDelta(t, want, vmath.XYZ(v).Length(), 1e-6, "particle %d", i)
		assert.Positive(t, v.Z())
		// Each particle is pulled back towards the axis.
		assert.Equal(t, positions[i].X() > 0, v.X() < 0, "particle %d velocity %v", i, v)
	}
}

func TestReferenceInactiveAttractorOnlyDamps(t *testing.T) {
	state, err := NewState(
		[]vmath.Vec4f{vmath.NewVec4[float32](5, 5, 5, 1)},
		[]vmath.Vec4f{vmath.NewVec4[float32](0, 4, 0, 0)},
	)
	require.NoError(t, err)

	p := DefaultParams()
	p.Damping = 0.5
	require.NoError(t, NewReference(p, state, 1).Step(context.Background(), Uniforms{
		DT:                1,
		AttractorPosition: vmath.NewVec3[float32](100, 0, 0),
	}))

	assert.True(t, state.Velocities[0].Equals(vmath.NewVec4[float32](0, 2, 0, 0)))
	assert.True(t, state.Positions[0].Equals(vmath.NewVec4[float32](5, 7, 5, 1)))
}

func TestReferenceParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pos := Lattice(24, 0.5)
	vel := RandomVelocities(len(pos), 3, rng)

	want := make([]vmath.Vec4f, len(pos))
	wantVel := make([]vmath.Vec4f, len(pos))
	p := DefaultParams()
	u := Uniforms{DT: 0.02, AttractorActive: true, AttractorPosition: vmath.NewVec3[float32](3, -2, 40)}
	for i := range pos {
		want[i], wantVel[i] = StepParticle(p, u, pos[i], vel[i])
	}

	state, err := NewState(pos, vel)
	require.NoError(t, err)
	require.NoError(t, NewReference(p, state, 4).Step(context.Background(), u))

	for i := range want {
		if !state.Positions[i].Equals(want[i]) || !state.Velocities[i].Equals(wantVel[i]) {
			t.Fatalf("particle %d: got %v %v, want %v %v",
				i, state.Positions[i], state.Velocities[i], want[i], wantVel[i])
		}
	}
}

func TestReferenceCancelled(t *testing.T) {
	state, err := NewState(Lattice(20, 1), make([]vmath.Vec4f, 8000))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = NewReference(DefaultParams(), state, 4).Step(ctx, Uniforms{DT: 0.1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReferenceLengthMismatch(t *testing.T) {
	state := &State{Positions: make([]vmath.Vec4f, 3), Velocities: make([]vmath.Vec4f, 2)}
	err := NewReference(DefaultParams(), state, 1).Step(context.Background(), Uniforms{})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = NewState(make([]vmath.Vec4f, 1), nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestGroups(t *testing.T) {
	tests := []struct {
		n, local, want int
	}{
		{0, 64, 0},
		{1, 64, 1},
		{64, 64, 1},
		{65, 64, 2},
		{1 << 21, 64, 1 << 15},
		{1000, 256, 4},
	}
	for _, tt := range tests {
		if got := Groups(tt.n, tt.local); got != tt.want {
			t.Errorf("Groups(%d, %d) = %d, want %d", tt.n, tt.local, got, tt.want)
		}
		if groups := Groups(tt.n, tt.local); groups*tt.local < tt.n {
			t.Errorf("Groups(%d, %d) does not cover every lane", tt.n, tt.local)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())

	p := DefaultParams()
	p.LocalSize = 48
	assert.ErrorIs(t, p.Validate(), ErrLocalSize)

	p = DefaultParams()
	p.EpsilonFloor = 0
	assert.Error(t, p.Validate())

	assert.True(t, IsPowerOfTwo(1))
	assert.True(t, IsPowerOfTwo(256))
	assert.False(t, IsPowerOfTwo(0))
	assert.False(t, IsPowerOfTwo(96))
}

func TestLattice(t *testing.T) {
	pts := Lattice(3, 2)
	require.Len(t, pts, 27)
	assert.True(t, pts[0].Equals(vmath.NewVec4[float32](-2, -2, -2, 1)))
	assert.True(t, pts[26].Equals(vmath.NewVec4[float32](2, 2, 2, 1)))
	assert.True(t, pts[13].Equals(vmath.NewVec4[float32](0, 0, 0, 1)))
	assert.Nil(t, Lattice(0, 1))

	assert.Equal(t, 3, SideForCount(27))
	assert.Equal(t, 4, SideForCount(28))
	assert.Equal(t, 128, SideForCount(1<<21))
}

func TestRandomVelocities(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	vel := RandomVelocities(500, 2, rng)
	require.Len(t, vel, 500)
	for _, v := range vel {
		for i := 0; i < 3; i++ {
			assert.LessOrEqual(t, v.At(i), float32(2))
			assert.GreaterOrEqual(t, v.At(i), float32(-2))
		}
		assert.Zero(t, v.W())
	}

	for _, v := range RandomVelocities(4, 0, nil) {
		assert.True(t, v.Equals(vmath.Vec4f{}))
	}

	state, err := NewState(Lattice(1, 1), []vmath.Vec4f{vmath.NewVec4[float32](3, 4, 0, 0)})
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, state.Speeds())
}

func BenchmarkReferenceStep(b *testing.B) {
	pos := Lattice(64, 0.25)
	state, err := NewState(pos, make([]vmath.Vec4f, len(pos)))
	if err != nil {
		b.Fatal(err)
	}
	ref := NewReference(DefaultParams(), state, 0)
	u := Uniforms{DT: 0.016, AttractorActive: true, AttractorPosition: vmath.NewVec3[float32](0, 0, 30)}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := ref.Step(ctx, u); err != nil {
			b.Fatal(err)
		}
	}
}
