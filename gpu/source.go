package gpu

import (
	_ "embed"
	"strconv"
	"strings"

	"github.com/pthm-cable/particles/sim"
)

//go:embed shaders/simulate.comp
var simulateSrc string

// Define is a preprocessor constant injected into a shader source.
type Define struct {
	Name  string
	Value string
}

// FloatDefine formats v as a GLSL float literal.
func FloatDefine(name string, v float32) Define {
	return Define{Name: name, Value: GLSLFloat(v)}
}

// IntDefine formats v as a GLSL integer literal.
func IntDefine(name string, v int) Define {
	return Define{Name: name, Value: strconv.Itoa(v)}
}

// GLSLFloat formats v so GLSL parses it as a float, never as an int.
func GLSLFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// WithDefines inserts #define lines directly after the #version
// directive, which must stay the first statement. Sources without a
// #version line get the defines prepended.
func WithDefines(src string, defines ...Define) string {
	if len(defines) == 0 {
		return src
	}

	var header strings.Builder
	for _, d := range defines {
		header.WriteString("#define ")
		header.WriteString(d.Name)
		header.WriteByte(' ')
		header.WriteString(d.Value)
		header.WriteByte('\n')
	}

	trimmed := strings.TrimLeft(src, " \t\r\n")
	if !strings.HasPrefix(trimmed, "#version") {
		return header.String() + src
	}
	offset := len(src) - len(trimmed)
	eol := strings.IndexByte(trimmed, '\n')
	if eol < 0 {
		return src + "\n" + header.String()
	}
	cut := offset + eol + 1
	return src[:cut] + header.String() + src[cut:]
}

// KernelSource returns the compute shader text with p compiled in.
func KernelSource(p sim.Params) string {
	return WithDefines(simulateSrc,
		FloatDefine("DAMPING", p.Damping),
		FloatDefine("ATTRACTOR_K", p.AttractorK),
		FloatDefine("EPSILON_FLOOR", p.EpsilonFloor),
		IntDefine("LOCAL_SIZE", p.LocalSize),
	)
}
