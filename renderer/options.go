package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pthm-cable/particles/gpu"
	"github.com/pthm-cable/particles/vmath"
)

var (
	//go:embed shaders/particle.vert
	vertexSrc string
	//go:embed shaders/particle.geom
	geometrySrc string
	//go:embed shaders/particle.frag
	fragmentSrc string
)

// ErrColor is returned for a malformed hex color.
var ErrColor = errors.New("renderer: invalid color")

// Options configure the particle pipeline. Everything except the
// projection parameters is compiled into the shaders.
type Options struct {
	// UseGeometry expands each point into a quad in a geometry stage.
	// Otherwise points are drawn as point sprites of PointSize pixels.
	UseGeometry bool
	SpriteSize  float32 // quad half-extent in view units
	PointSize   float32

	LowColor  vmath.Vec3f // 0..1 RGB at SpeedLow and below
	HighColor vmath.Vec3f // 0..1 RGB at SpeedHigh and above
	SpeedLow  float32
	SpeedHigh float32

	FOV  float32 // vertical, degrees
	Near float32
	Far  float32
}

// DefaultOptions returns the stock look: pale blue slow particles ramping
// to magenta.
func DefaultOptions() Options {
	lo, _ := ParseHexColor("#e6f3ff")
	hi, _ := ParseHexColor("#ff0066")
	return Options{
		UseGeometry: true,
		SpriteSize:  0.05,
		PointSize:   4,
		LowColor:    lo,
		HighColor:   hi,
		SpeedLow:    0,
		SpeedHigh:   100,
		FOV:         60,
		Near:        0.1,
		Far:         1000,
	}
}

// ParseHexColor parses "#rrggbb" (the # is optional) into 0..1 RGB.
func ParseHexColor(s string) (vmath.Vec3f, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return vmath.Vec3f{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return vmath.Vec3f{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	return vmath.NewVec3(
		float32(v>>16&0xff)/255,
		float32(v>>8&0xff)/255,
		float32(v&0xff)/255,
	), nil
}

func vec3Literal(v vmath.Vec3f) string {
	return fmt.Sprintf("vec3(%s, %s, %s)", gpu.GLSLFloat(v.X()), gpu.GLSLFloat(v.Y()), gpu.GLSLFloat(v.Z()))
}

// Defines returns the preprocessor constants shared by every stage.
func (o Options) Defines() []gpu.Define {
	defs := []gpu.Define{
		{Name: "LO_COLOR", Value: vec3Literal(o.LowColor)},
		{Name: "HI_COLOR", Value: vec3Literal(o.HighColor)},
		gpu.FloatDefine("SPEED_LO", o.SpeedLow),
		gpu.FloatDefine("SPEED_HI", o.SpeedHigh),
		gpu.FloatDefine("SPRITE_SIZE", o.SpriteSize),
		gpu.FloatDefine("POINT_SIZE", o.PointSize),
	}
	if o.UseGeometry {
		defs = append(defs, gpu.Define{Name: "USE_GEOMETRY", Value: "1"})
	}
	return defs
}

// Stages returns the program stages for o, with defines applied.
func (o Options) Stages() []gpu.Stage {
	defs := o.Defines()
	stages := []gpu.Stage{
		{Kind: gpu.VertexStage, Name: "particle.vert", Source: gpu.WithDefines(vertexSrc, defs...)},
	}
	if o.UseGeometry {
		stages = append(stages, gpu.Stage{Kind: gpu.GeometryStage, Name: "particle.geom", Source: gpu.WithDefines(geometrySrc, defs...)})
	}
	return append(stages, gpu.Stage{Kind: gpu.FragmentStage, Name: "particle.frag", Source: gpu.WithDefines(fragmentSrc, defs...)})
}

// Projection builds the perspective matrix for a viewport.
func (o Options) Projection(width, height int) vmath.Mat4f {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return vmath.Perspective(o.FOV, aspect, o.Near, o.Far)
}
