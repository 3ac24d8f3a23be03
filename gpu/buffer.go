package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/pthm-cable/particles/sim"
	"github.com/pthm-cable/particles/vmath"
)

// Storage buffer binding points shared by the kernel and the renderer.
const (
	PositionBinding uint32 = 0
	VelocityBinding uint32 = 1
)

const vec4Size = int(unsafe.Sizeof(vmath.Vec4f{}))

// StorageBuffer is a fixed-size shader storage buffer of vec4 elements.
// Its contents are uploaded once and afterwards only touched by shaders.
type StorageBuffer struct {
	id      uint32
	count   int
	binding uint32
}

// NewStorageBuffer uploads data into a new buffer that will be bound at
// the given index.
func NewStorageBuffer(data []vmath.Vec4f, binding uint32) *StorageBuffer {
	b := &StorageBuffer{count: len(data), binding: binding}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.id)

	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, len(data)*vec4Size, ptr, gl.DYNAMIC_COPY)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	return b
}

// Bind attaches the buffer to its binding point.
func (b *StorageBuffer) Bind() {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, b.binding, b.id)
}

func (b *StorageBuffer) Len() int { return b.count }

func (b *StorageBuffer) ID() uint32 { return b.id }

func (b *StorageBuffer) Delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// ParticleBuffers is the device-resident particle state: positions and
// velocities of equal length, index-aligned.
type ParticleBuffers struct {
	Positions  *StorageBuffer
	Velocities *StorageBuffer
}

// NewParticleBuffers uploads s. The host copy is not needed afterwards.
func NewParticleBuffers(s *sim.State) (*ParticleBuffers, error) {
	if len(s.Positions) != len(s.Velocities) {
		return nil, sim.ErrLengthMismatch
	}
	return &ParticleBuffers{
		Positions:  NewStorageBuffer(s.Positions, PositionBinding),
		Velocities: NewStorageBuffer(s.Velocities, VelocityBinding),
	}, nil
}

// Bind attaches both buffers to their binding points.
func (p *ParticleBuffers) Bind() {
	p.Positions.Bind()
	p.Velocities.Bind()
}

// Len returns the particle count.
func (p *ParticleBuffers) Len() int { return p.Positions.Len() }

func (p *ParticleBuffers) Delete() {
	p.Positions.Delete()
	p.Velocities.Delete()
}
