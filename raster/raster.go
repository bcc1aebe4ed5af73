/*
Package raster loads still and animated images as a sequence of equally
sized frames.

GIF animations are composited onto a canvas the size of the logical screen,
so every frame is a complete picture that can be converted on its own and in
any order. Frames stay palette-indexed for as long as every frame shares the
first frame's color table. From the first frame with a local color table on,
frames are direct color with palette index zero and the GIF transparent index
resolved to fully transparent. Pixels that no frame has painted yet are
palette index zero. All other formats registered with the image package (PNG, JPEG,
BMP, TIFF and WebP) produce exactly one frame with no duration.
*/
package raster

import (
	"bufio"
	"bytes"
	"image"
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

var (
	// ErrEmpty is returned for images without frames or pixels
	ErrEmpty = errors.New("raster: image has no frames")

	gifMagic = []byte("GIF8")
)

// Frame is one complete picture of an image. Duration is the display time
// in milliseconds, zero if the format has no timing.
type Frame struct {
	Image    image.Image
	Duration float64
}

// Image is a decoded image. All frames share the same Width and Height.
type Image struct {
	Format string
	Width  int
	Height int
	Frames []Frame
}

// Len returns the number of frames
func (m *Image) Len() int {
	return len(m.Frames)
}

// Paletted reports whether the first frame is palette-indexed
func (m *Image) Paletted() bool {
	if len(m.Frames) == 0 {
		return false
	}
	_, ok := m.Frames[0].Image.(image.PalettedImage)
	return ok
}

// Decode reads an image from r and returns all of its frames.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	// A short read is left for the decoder to report
	magic, _ := br.Peek(len(gifMagic))
	if bytes.Equal(magic, gifMagic) {
		return decodeGIF(br)
	}

	m, format, err := image.Decode(br)
	if err != nil {
		return nil, err
	}

	b := m.Bounds()
	if b.Empty() {
		return nil, ErrEmpty
	}

	return &Image{
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
		Frames: []Frame{
			{
				Image: m,
			},
		},
	}, nil
}

// Open decodes the image stored in file.
func Open(file string) (*Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}
