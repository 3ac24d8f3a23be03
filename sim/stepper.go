package sim

import "context"

// Stepper advances particle state by one frame. When Step returns, every
// write of that frame is visible to whatever reads the state next.
type Stepper interface {
	Step(ctx context.Context, u Uniforms) error
	Len() int
}
