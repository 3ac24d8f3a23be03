// Package gpu is the thin OpenGL 4.3 binding layer used by the simulation
// and the renderer: program building, shader storage buffers, the compute
// kernel that integrates particles, textures and error polling.
//
// Every function other than the pure source helpers requires a current
// GL context on the calling goroutine.
package gpu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// ProcResolver looks up GL entry points for the current platform. It is
// supplied by whoever created the context.
type ProcResolver interface {
	ProcAddress(name string) unsafe.Pointer
}

// ProcResolverFunc adapts a lookup function to ProcResolver.
type ProcResolverFunc func(name string) unsafe.Pointer

func (f ProcResolverFunc) ProcAddress(name string) unsafe.Pointer { return f(name) }

// Init loads the GL entry points through r. A nil resolver falls back to
// the platform's default lookup.
func Init(r ProcResolver) error {
	var err error
	if r == nil {
		err = gl.Init()
	} else {
		err = gl.InitWithProcAddrFunc(r.ProcAddress)
	}
	if err != nil {
		return fmt.Errorf("loading GL entry points: %w", err)
	}
	return nil
}

// Info describes the active context.
type Info struct {
	Vendor   string
	Renderer string
	Version  string
	GLSL     string
}

// QueryInfo reads the context strings.
func QueryInfo() Info {
	return Info{
		Vendor:   glString(gl.VENDOR),
		Renderer: glString(gl.RENDERER),
		Version:  glString(gl.VERSION),
		GLSL:     glString(gl.SHADING_LANGUAGE_VERSION),
	}
}

// ErrContextVersion reports a context too old for compute shaders. raylib
// only requests a 4.3 context when built with -tags opengl43.
var ErrContextVersion = errors.New("gpu: OpenGL 4.3 context required (build with -tags opengl43)")

// ParseVersion extracts major and minor from a GL_VERSION string such as
// "4.6.0 NVIDIA 535.54" or "3.3 (Core Profile) Mesa 23.0".
func ParseVersion(s string) (major, minor int, err error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, 0, errors.New("gpu: empty version string")
	}
	parts := strings.SplitN(fields[0], ".", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("gpu: malformed version %q", s)
	}
	if major, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("gpu: malformed version %q: %w", s, err)
	}
	if minor, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("gpu: malformed version %q: %w", s, err)
	}
	return major, minor, nil
}

// RequireCompute fails with ErrContextVersion unless the context is at
// least OpenGL 4.3.
func (i Info) RequireCompute() error {
	major, minor, err := ParseVersion(i.Version)
	if err != nil {
		return err
	}
	if major < 4 || (major == 4 && minor < 3) {
		return fmt.Errorf("%w: got %s", ErrContextVersion, i.Version)
	}
	return nil
}

func glString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}
