package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// ErrPixelData is returned when the pixel slice does not match the image
// dimensions.
var ErrPixelData = errors.New("gpu: pixel data does not match texture size")

// Texture is an immutable 2D RGB or RGBA texture.
type Texture struct {
	id            uint32
	width, height int
	alpha         bool
}

// PixelFormat returns the internal and upload formats for an image with
// or without an alpha channel, and its bytes per pixel.
func PixelFormat(alpha bool) (internal int32, format uint32, channels int) {
	if alpha {
		return gl.RGBA8, gl.RGBA, 4
	}
	return gl.RGB8, gl.RGB, 3
}

// NewTexture uploads tightly packed 8-bit pixels.
func NewTexture(width, height int, alpha bool, pixels []byte) (*Texture, error) {
	internal, format, channels := PixelFormat(alpha)
	if width <= 0 || height <= 0 || len(pixels) != width*height*channels {
		return nil, fmt.Errorf("%w: %dx%d with %d channels, got %d bytes",
			ErrPixelData, width, height, channels, len(pixels))
	}

	t := &Texture{width: width, height: height, alpha: alpha}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0,
		format, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// Bind makes the texture current on the given unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *Texture) Size() (int, int) { return t.width, t.height }

func (t *Texture) HasAlpha() bool { return t.alpha }

func (t *Texture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
