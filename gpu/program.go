package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/pthm-cable/particles/vmath"
)

// Program is a linked GL program object.
type Program uint32

// InvalidProgram is the handle carried by a failed build.
const InvalidProgram Program = 0

// ErrLink is returned when the stages compile but do not link.
var ErrLink = errors.New("gpu: program link failed")

// StageKind names a programmable pipeline stage.
type StageKind uint32

const (
	VertexStage   StageKind = gl.VERTEX_SHADER
	GeometryStage StageKind = gl.GEOMETRY_SHADER
	FragmentStage StageKind = gl.FRAGMENT_SHADER
	ComputeStage  StageKind = gl.COMPUTE_SHADER
)

func (k StageKind) String() string {
	switch k {
	case VertexStage:
		return "vertex"
	case GeometryStage:
		return "geometry"
	case FragmentStage:
		return "fragment"
	case ComputeStage:
		return "compute"
	}
	return fmt.Sprintf("stage(0x%x)", uint32(k))
}

// Stage is one shader source to compile into a program.
type Stage struct {
	Kind   StageKind
	Name   string // used in diagnostics
	Source string
}

// CompileError carries the driver's diagnostic for a stage.
type CompileError struct {
	Stage string
	Kind  StageKind
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("gpu: compiling %s shader %s: %s", e.Kind, e.Stage, strings.TrimSpace(e.Log))
}

// BuildProgram compiles and links the stages. Diagnostics are logged and
// returned; on failure the handle is InvalidProgram.
func BuildProgram(stages ...Stage) (Program, error) {
	shaders := make([]uint32, 0, len(stages))
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()

	var errs []error
	for _, st := range stages {
		s, err := compileStage(st)
		if err != nil {
			slog.Error("shader compile failed", "stage", st.Name, "kind", st.Kind.String(), "log", err.Log)
			errs = append(errs, err)
			continue
		}
		shaders = append(shaders, s)
	}
	if len(errs) > 0 {
		return InvalidProgram, errors.Join(errs...)
	}

	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status != gl.TRUE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		log := infoLog(n, func(buf *uint8) { gl.GetProgramInfoLog(prog, n, nil, buf) })
		gl.DeleteProgram(prog)
		slog.Error("program link failed", "log", log)
		return InvalidProgram, fmt.Errorf("%w: %s", ErrLink, strings.TrimSpace(log))
	}

	for _, s := range shaders {
		gl.DetachShader(prog, s)
	}
	return Program(prog), nil
}

func compileStage(st Stage) (uint32, *CompileError) {
	s := gl.CreateShader(uint32(st.Kind))
	src, free := gl.Strs(st.Source + "\x00")
	gl.ShaderSource(s, 1, src, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return s, nil
	}

	var n int32
	gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &n)
	log := infoLog(n, func(buf *uint8) { gl.GetShaderInfoLog(s, n, nil, buf) })
	gl.DeleteShader(s)
	return 0, &CompileError{Stage: st.Name, Kind: st.Kind, Log: log}
}

func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return ""
	}
	buf := make([]uint8, n+1)
	read(&buf[0])
	return gl.GoStr(&buf[0])
}

// Valid reports whether p refers to a linked program.
func (p Program) Valid() bool { return p != InvalidProgram }

func (p Program) Use() { gl.UseProgram(uint32(p)) }

func (p Program) Delete() {
	if p.Valid() {
		gl.DeleteProgram(uint32(p))
	}
}

// Uniform returns the location of a uniform, or -1 if the linker
// dropped it.
func (p Program) Uniform(name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

// The setters below write to the program currently in use. A location
// of -1 is silently ignored by GL.

func SetFloat(loc int32, v float32) { gl.Uniform1f(loc, v) }

func SetInt(loc int32, v int32) { gl.Uniform1i(loc, v) }

func SetUint(loc int32, v uint32) { gl.Uniform1ui(loc, v) }

func SetBool(loc int32, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(loc, i)
}

func SetVec3(loc int32, v vmath.Vec3f) { gl.Uniform3f(loc, v.X(), v.Y(), v.Z()) }

// SetMat4 uploads m in its native column-major order.
func SetMat4(loc int32, m vmath.Mat4f) {
	d := m.Data()
	gl.UniformMatrix4fv(loc, 1, false, &d[0])
}
