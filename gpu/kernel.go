package gpu

import (
	"context"
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/pthm-cable/particles/sim"
)

// Kernel integrates the particle buffers on the GPU. It implements
// sim.Stepper.
type Kernel struct {
	prog    Program
	buffers *ParticleBuffers
	groups  uint32

	locDT        int32
	locActive    int32
	locAttractor int32
	locCount     int32
}

var _ sim.Stepper = (*Kernel)(nil)

// NewKernel builds the compute program for params over buffers.
func NewKernel(params sim.Params, buffers *ParticleBuffers) (*Kernel, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	prog, err := BuildProgram(Stage{Kind: ComputeStage, Name: "simulate.comp", Source: KernelSource(params)})
	if err != nil {
		return nil, fmt.Errorf("building simulation kernel: %w", err)
	}

	groups := sim.Groups(buffers.Len(), params.LocalSize)
	var maxGroups int32
	gl.GetIntegeri_v(gl.MAX_COMPUTE_WORK_GROUP_COUNT, 0, &maxGroups)
	if maxGroups > 0 && groups > int(maxGroups) {
		prog.Delete()
		return nil, fmt.Errorf("simulation kernel needs %d work groups, device allows %d", groups, maxGroups)
	}

	return &Kernel{
		prog:         prog,
		buffers:      buffers,
		groups:       uint32(groups),
		locDT:        prog.Uniform("dt"),
		locActive:    prog.Uniform("attractorActive"),
		locAttractor: prog.Uniform("attractorPosition"),
		locCount:     prog.Uniform("particleCount"),
	}, nil
}

func (k *Kernel) Len() int { return k.buffers.Len() }

// Groups returns the number of work groups issued per step.
func (k *Kernel) Groups() uint32 { return k.groups }

// Step issues one dispatch covering every particle, then a full memory
// barrier so the renderer's reads in the same frame see the writes.
func (k *Kernel) Step(ctx context.Context, u sim.Uniforms) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if k.groups == 0 {
		return nil
	}

	k.prog.Use()
	k.buffers.Bind()
	SetFloat(k.locDT, u.DT)
	SetBool(k.locActive, u.AttractorActive)
	SetVec3(k.locAttractor, u.AttractorPosition)
	SetUint(k.locCount, uint32(k.buffers.Len()))

	gl.DispatchCompute(k.groups, 1, 1)
	gl.MemoryBarrier(gl.ALL_BARRIER_BITS)
	return nil
}

func (k *Kernel) Delete() { k.prog.Delete() }
