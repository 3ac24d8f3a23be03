package sim

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/particles/vmath"
)

// minChunk is the smallest lane range worth a goroutine.
const minChunk = 1024

// Reference runs the particle kernel on the CPU. It integrates the same
// per-lane contract as the GPU kernel and is used for headless runs and
// as a test oracle.
type Reference struct {
	params  Params
	state   *State
	workers int
}

// NewReference creates a CPU stepper over state. workers <= 0 uses
// GOMAXPROCS.
func NewReference(params Params, state *State, workers int) *Reference {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Reference{params: params, state: state, workers: workers}
}

func (r *Reference) Len() int { return r.state.Len() }

// State returns the live state the stepper mutates.
func (r *Reference) State() *State { return r.state }

// Step integrates every particle once. Lanes are split into contiguous
// chunks; Step returns after all chunks finish.
func (r *Reference) Step(ctx context.Context, u Uniforms) error {
	n := r.state.Len()
	if len(r.state.Velocities) != n {
		return ErrLengthMismatch
	}
	if n == 0 {
		return nil
	}

	chunk := max(minChunk, (n+r.workers-1)/r.workers)
	if chunk >= n {
		r.integrate(0, n, u)
		return ctx.Err()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.integrate(start, end, u)
			return nil
		})
	}
	return g.Wait()
}

func (r *Reference) integrate(start, end int, u Uniforms) {
	pos := r.state.Positions[start:end]
	vel := r.state.Velocities[start:end]
	for i := range pos {
		pos[i], vel[i] = StepParticle(r.params, u, pos[i], vel[i])
	}
}

// StepParticle applies the kernel to one particle:
//
//	velocity *= 1 - damping*dt
//	if attractor active:
//	    toTarget = attractor - position.xyz
//	    dist = max(1, |toTarget|)
//	    velocity.xyz += normalize(toTarget) * K / (epsilonFloor * dist^1.5) * dt
//	position += velocity * dt
//
// A particle exactly on the attractor gets a non-finite velocity.
func StepParticle(p Params, u Uniforms, pos, vel vmath.Vec4f) (vmath.Vec4f, vmath.Vec4f) {
	vel = vel.Scale(1 - p.Damping*u.DT)

	if u.AttractorActive {
		toTarget := u.AttractorPosition.Sub(vmath.XYZ(pos))
		dist := max(1, toTarget.Length())
		accel := p.AttractorK / (p.EpsilonFloor * float32(math.Pow(dist, 1.5)))
		pull := toTarget.Normalized().Scale(accel * u.DT)
		vel = vel.Add(vmath.Extend4(pull, 0))
	}

	pos = pos.Add(vel.Scale(u.DT))
	return pos, vel
}
