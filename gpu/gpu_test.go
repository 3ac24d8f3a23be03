package gpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/particles/sim"
)

func TestErrorName(t *testing.T) {
	tests := []struct {
		code uint32
		want string
	}{
		{0x0500, "invalid enum"},
		{0x0501, "invalid value"},
		{0x0502, "invalid operation"},
		{0x0503, "stack overflow"},
		{0x0504, "stack underflow"},
		{0x0505, "out of memory"},
		{0x0506, "invalid framebuffer operation"},
		{0x0507, "context lost"},
		{0x9999, "unknown error 0x9999"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorName(tt.code))
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in           string
		major, minor int
	}{
		{"4.6.0 NVIDIA 535.54.03", 4, 6},
		{"3.3 (Core Profile) Mesa 23.0.4", 3, 3},
		{"4.3.0 - Build 31.0.101.2111", 4, 3},
		{"4.1 Metal - 83.1", 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			major, minor, err := ParseVersion(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.major, major)
			assert.Equal(t, tt.minor, minor)
		})
	}

	for _, bad := range []string{"", "   ", "4", "x.y", "4.beta"} {
		_, _, err := ParseVersion(bad)
		assert.Error(t, err, "version %q", bad)
	}
}

func TestRequireCompute(t *testing.T) {
	assert.NoError(t, Info{Version: "4.3.0 NVIDIA"}.RequireCompute())
	assert.NoError(t, Info{Version: "4.6 (Core Profile) Mesa 24.1"}.RequireCompute())

	// Default raylib builds request a 3.3 core context.
	err := Info{Version: "3.3 (Core Profile) Mesa 23.0.4"}.RequireCompute()
	require.ErrorIs(t, err, ErrContextVersion)
	assert.Contains(t, err.Error(), "-tags opengl43")
	assert.Contains(t, err.Error(), "3.3 (Core Profile)")

	require.ErrorIs(t, Info{Version: "4.1 Metal - 83.1"}.RequireCompute(), ErrContextVersion)

	err = Info{Version: ""}.RequireCompute()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrContextVersion)
}

func TestGLSLFloat(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{0.9, "0.9"},
		{2000, "2000.0"},
		{1, "1.0"},
		{-3, "-3.0"},
		{1e-7, "1e-07"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GLSLFloat(tt.in))
	}
}

func TestWithDefines(t *testing.T) {
	src := "#version 430\nvoid main() {}\n"
	got := WithDefines(src, Define{"A", "1"}, FloatDefine("B", 2))
	assert.Equal(t, "#version 430\n#define A 1\n#define B 2.0\nvoid main() {}\n", got)

	// Leading blank lines before the directive are preserved.
	got = WithDefines("\n#version 430 core\nx", IntDefine("N", 64))
	assert.Equal(t, "\n#version 430 core\n#define N 64\nx", got)

	assert.Equal(t, "#define N 1\nvoid main() {}", WithDefines("void main() {}", IntDefine("N", 1)))
	assert.Equal(t, src, WithDefines(src))
}

func TestKernelSource(t *testing.T) {
	p := sim.DefaultParams()
	p.Damping = 0.5
	p.LocalSize = 128
	src := KernelSource(p)

	require.True(t, strings.HasPrefix(src, "#version 430\n"), "version must stay first:\n%s", src)
	for _, want := range []string{
		"#define DAMPING 0.5\n",
		"#define ATTRACTOR_K 2000.0\n",
		"#define EPSILON_FLOOR 1.0\n",
		"#define LOCAL_SIZE 128\n",
		"layout(local_size_x = LOCAL_SIZE) in;",
		"binding = 0",
		"binding = 1",
		"uniform float dt;",
		"uniform bool attractorActive;",
		"uniform vec3 attractorPosition;",
		"idx >= particleCount",
	} {
		assert.Contains(t, src, want)
	}
	// Defines must precede their first use.
	assert.Less(t, strings.Index(src, "#define LOCAL_SIZE"), strings.Index(src, "local_size_x"))
}

func TestPixelFormat(t *testing.T) {
	internal, format, channels := PixelFormat(true)
	assert.EqualValues(t, 0x8058, internal) // RGBA8
	assert.EqualValues(t, 0x1908, format)   // RGBA
	assert.Equal(t, 4, channels)

	internal, format, channels = PixelFormat(false)
	assert.EqualValues(t, 0x8051, internal) // RGB8
	assert.EqualValues(t, 0x1907, format)   // RGB
	assert.Equal(t, 3, channels)
}

func TestNewTextureRejectsBadPixelData(t *testing.T) {
	_, err := NewTexture(2, 2, true, make([]byte, 12))
	assert.ErrorIs(t, err, ErrPixelData)

	_, err = NewTexture(0, 2, false, nil)
	assert.ErrorIs(t, err, ErrPixelData)
}

func TestStageKindString(t *testing.T) {
	assert.Equal(t, "compute", ComputeStage.String())
	assert.Equal(t, "geometry", GeometryStage.String())

	err := &CompileError{Stage: "particle.vert", Kind: VertexStage, Log: "0:3: error\n"}
	assert.Equal(t, "gpu: compiling vertex shader particle.vert: 0:3: error", err.Error())
}

func TestProgramValid(t *testing.T) {
	assert.False(t, InvalidProgram.Valid())
	assert.True(t, Program(3).Valid())
}
