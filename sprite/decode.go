package sprite

import (
	"fmt"
	"image"
	"image/color"

	"github.com/bodgit/palc/raster"
	"github.com/pkg/errors"
)

var (
	// ErrFrameOutOfRange is returned when decoding a frame the image does
	// not have
	ErrFrameOutOfRange = errors.New("sprite: frame index out of range")

	// ErrIndexOutOfRange is returned for a pixel whose palette index is past
	// the end of the palette
	ErrIndexOutOfRange = errors.New("sprite: palette index out of range")

	errFrameSize = errors.New("sprite: frame size differs from image size")
)

// Color is a non-premultiplied RGBA color as stored in the engine.
type Color struct {
	R, G, B, A uint8
}

// Transparent is the color of palette index zero
var Transparent = Color{}

func (c Color) String() string {
	return fmt.Sprintf("{%d,%d,%d,%d}", c.R, c.G, c.B, c.A)
}

func toColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

// PixelGrid is the decoded content of one frame in row-major order.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []Color
}

// At returns the color at x, y
func (g PixelGrid) At(x, y int) Color {
	return g.Pix[y*g.Width+x]
}

// Row returns the colors of row y
func (g PixelGrid) Row(y int) []Color {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// DecodeFrame resolves every pixel of frame f of m. For palette-indexed
// frames index zero is always transparent regardless of the palette entry.
// It does not modify m and may be called for any frame in any order.
func DecodeFrame(m *raster.Image, f int) (PixelGrid, error) {
	if f < 0 || f >= len(m.Frames) {
		return PixelGrid{}, errors.Wrapf(ErrFrameOutOfRange, "frame %d of %d", f, len(m.Frames))
	}

	frame := m.Frames[f].Image
	b := frame.Bounds()
	if b.Dx() != m.Width || b.Dy() != m.Height {
		return PixelGrid{}, errors.Wrapf(errFrameSize, "frame %d is %dx%d, image is %dx%d", f, b.Dx(), b.Dy(), m.Width, m.Height)
	}

	grid := PixelGrid{
		Width:  m.Width,
		Height: m.Height,
		Pix:    make([]Color, 0, m.Width*m.Height),
	}

	if pm, ok := frame.(image.PalettedImage); ok {
		if p, ok := pm.ColorModel().(color.Palette); ok {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					i := pm.ColorIndexAt(x, y)
					switch {
					case i == 0:
						grid.Pix = append(grid.Pix, Transparent)
					case int(i) >= len(p):
						return PixelGrid{}, errors.Wrapf(ErrIndexOutOfRange, "frame %d index %d at (%d,%d), palette has %d colors", f, i, x, y, len(p))
					default:
						grid.Pix = append(grid.Pix, toColor(p[i]))
					}
				}
			}
			return grid, nil
		}
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			grid.Pix = append(grid.Pix, toColor(frame.At(x, y)))
		}
	}

	return grid, nil
}
