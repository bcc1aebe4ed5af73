package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
)

// GIF delays are in hundredths of a second
const gifDelayUnit = 10

// The gif package replaces the transparent palette entry with a zero
// color.RGBA, which an opaque entry can never be.
func transparentIndex(p color.Palette) int {
	for i, c := range p {
		if c == (color.RGBA{}) {
			return i
		}
	}
	return -1
}

func samePalette(a, b color.Palette) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Index zero is transparent on the engine side, so it resolves to the zero
// color like the GIF transparent index does
func resolve(p color.Palette, index uint8) color.NRGBA {
	if index == 0 || int(index) >= len(p) {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(p[index]).(color.NRGBA)
}

func fillRect(canvas []uint8, stride int, r image.Rectangle, index uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			canvas[y*stride+x] = index
		}
	}
}

// canvas is the logical screen. Indices are only meaningful while every
// frame so far has used the first frame's palette; colors are always kept
// so frames with a different palette can be emitted as direct color.
type canvas struct {
	indices []uint8
	colors  *image.NRGBA
}

func newCanvas(bounds image.Rectangle) *canvas {
	return &canvas{
		indices: make([]uint8, bounds.Dx()*bounds.Dy()),
		colors:  image.NewNRGBA(bounds),
	}
}

func (c *canvas) copyFrom(o *canvas) {
	copy(c.indices, o.indices)
	copy(c.colors.Pix, o.colors.Pix)
}

func (c *canvas) clear(r image.Rectangle) {
	fillRect(c.indices, c.colors.Rect.Dx(), r, 0)
	draw.Draw(c.colors, r, image.Transparent, image.Point{}, draw.Src)
}

func decodeGIF(r io.Reader) (*Image, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}

	if len(g.Image) == 0 {
		return nil, ErrEmpty
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		// Fall back to the area covered by the frames
		for _, frame := range g.Image {
			bounds = bounds.Union(frame.Bounds())
		}
		bounds = image.Rect(0, 0, bounds.Max.X, bounds.Max.Y)
	}
	if bounds.Empty() {
		return nil, ErrEmpty
	}

	w, h := bounds.Dx(), bounds.Dy()

	screen := newCanvas(bounds)
	previous := newCanvas(bounds)

	palette := g.Image[0].Palette
	indexed := true

	m := &Image{
		Format: "gif",
		Width:  w,
		Height: h,
		Frames: make([]Frame, 0, len(g.Image)),
	}

	for i, frame := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		if disposal == gif.DisposalPrevious {
			previous.copyFrom(screen)
		}

		indexed = indexed && samePalette(frame.Palette, palette)

		transparent := transparentIndex(frame.Palette)
		area := frame.Bounds().Intersect(bounds)

		for y := area.Min.Y; y < area.Max.Y; y++ {
			for x := area.Min.X; x < area.Max.X; x++ {
				index := frame.ColorIndexAt(x, y)
				if int(index) == transparent {
					continue
				}
				screen.indices[y*w+x] = index
				screen.colors.SetNRGBA(x, y, resolve(frame.Palette, index))
			}
		}

		var out image.Image
		if indexed {
			p := image.NewPaletted(bounds, palette)
			copy(p.Pix, screen.indices)
			out = p
		} else {
			n := image.NewNRGBA(bounds)
			copy(n.Pix, screen.colors.Pix)
			out = n
		}

		var delay int
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}

		m.Frames = append(m.Frames, Frame{
			Image:    out,
			Duration: float64(delay * gifDelayUnit),
		})

		switch disposal {
		case gif.DisposalBackground:
			screen.clear(area)
		case gif.DisposalPrevious:
			screen.copyFrom(previous)
		}
	}

	return m, nil
}
