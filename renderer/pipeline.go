package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/pthm-cable/particles/gpu"
	"github.com/pthm-cable/particles/vmath"
)

// textureUnit is the sampler unit the particle texture is bound to.
const textureUnit = 0

// ParticleRenderer draws the particle buffers as additive, textured
// sprites. It reads positions and velocities straight from the storage
// buffers, so no vertex attributes are bound.
type ParticleRenderer struct {
	opts       Options
	prog       gpu.Program
	vao        uint32
	buffers    *gpu.ParticleBuffers
	texture    *gpu.Texture
	projection vmath.Mat4f

	locView       int32
	locProjection int32
	locTexture    int32
}

// NewParticleRenderer builds the pipeline for a viewport of the given size.
func NewParticleRenderer(opts Options, buffers *gpu.ParticleBuffers, tex *gpu.Texture, width, height int) (*ParticleRenderer, error) {
	prog, err := gpu.BuildProgram(opts.Stages()...)
	if err != nil {
		return nil, fmt.Errorf("building particle program: %w", err)
	}

	r := &ParticleRenderer{
		opts:          opts,
		prog:          prog,
		buffers:       buffers,
		texture:       tex,
		locView:       prog.Uniform("view"),
		locProjection: prog.Uniform("projection"),
		locTexture:    prog.Uniform("textureUnit"),
	}
	// Core profile refuses draws without a bound VAO, even an empty one.
	gl.GenVertexArrays(1, &r.vao)
	r.Resize(width, height)
	return r, nil
}

// Resize rebuilds the projection for a new viewport.
func (r *ParticleRenderer) Resize(width, height int) {
	r.projection = r.opts.Projection(width, height)
}

func (r *ParticleRenderer) Projection() vmath.Mat4f { return r.projection }

// Draw renders every particle with the given view matrix. The simulation
// step for this frame must already have issued its barrier.
func (r *ParticleRenderer) Draw(view vmath.Mat4f) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	if !r.opts.UseGeometry {
		gl.Enable(gl.PROGRAM_POINT_SIZE)
	}

	r.prog.Use()
	r.buffers.Bind()
	r.texture.Bind(textureUnit)
	gpu.SetInt(r.locTexture, textureUnit)
	gpu.SetMat4(r.locView, view)
	gpu.SetMat4(r.locProjection, r.projection)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.POINTS, 0, int32(r.buffers.Len()))

	// Hand the context back in the state the 2D overlay expects.
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if !r.opts.UseGeometry {
		gl.Disable(gl.PROGRAM_POINT_SIZE)
	}
}

func (r *ParticleRenderer) Delete() {
	r.prog.Delete()
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
}
