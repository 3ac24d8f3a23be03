package renderer

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particles/gpu"
)

// ErrImageLoad is returned when a texture file cannot be decoded.
var ErrImageLoad = errors.New("renderer: image load failed")

// Image is a decoded 8-bit image, tightly packed as RGB or RGBA.
type Image struct {
	Width  int
	Height int
	Alpha  bool
	Pixels []byte
}

// LoadImage decodes an image file. The alpha flag follows the file's
// pixel format, not its content.
func LoadImage(path string) (Image, error) {
	if _, err := os.Stat(path); err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}

	img := rl.LoadImage(path)
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return Image{}, fmt.Errorf("%w: %s: unsupported or corrupt file", ErrImageLoad, path)
	}
	defer rl.UnloadImage(img)

	colors := rl.LoadImageColors(img)
	defer rl.UnloadImageColors(colors)

	alpha := formatHasAlpha(img.Format)
	return Image{
		Width:  int(img.Width),
		Height: int(img.Height),
		Alpha:  alpha,
		Pixels: PackPixels(colors, alpha),
	}, nil
}

func formatHasAlpha(f rl.PixelFormat) bool {
	switch f {
	case rl.UncompressedGrayAlpha,
		rl.UncompressedR5g5b5a1,
		rl.UncompressedR4g4b4a4,
		rl.UncompressedR8g8b8a8,
		rl.UncompressedR32g32b32a32,
		rl.UncompressedR16g16b16a16:
		return true
	}
	return false
}

// PackPixels flattens colors to RGB or RGBA bytes.
func PackPixels(colors []color.RGBA, alpha bool) []byte {
	channels := 3
	if alpha {
		channels = 4
	}
	out := make([]byte, 0, len(colors)*channels)
	for _, c := range colors {
		out = append(out, c.R, c.G, c.B)
		if alpha {
			out = append(out, c.A)
		}
	}
	return out
}

// SoftSprite generates a white disc whose alpha falls off smoothly to
// the edge. It is used when no texture file is configured.
func SoftSprite(size int) Image {
	img := Image{Width: size, Height: size, Alpha: true, Pixels: make([]byte, size*size*4)}
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) + 0.5 - half) / half
			dy := (float64(y) + 0.5 - half) / half
			d := math.Min(1, math.Sqrt(dx*dx+dy*dy))
			a := 1 - d*d*(3-2*d)

			i := (y*size + x) * 4
			img.Pixels[i+0] = 255
			img.Pixels[i+1] = 255
			img.Pixels[i+2] = 255
			img.Pixels[i+3] = uint8(math.Round(a * 255))
		}
	}
	return img
}

// Upload creates a GPU texture from the image.
func (img Image) Upload() (*gpu.Texture, error) {
	return gpu.NewTexture(img.Width, img.Height, img.Alpha, img.Pixels)
}
