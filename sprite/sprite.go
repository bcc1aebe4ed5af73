/*
Package sprite compiles a raster image into the static data structures used
by the engine's sprite renderer.

Each frame becomes three definitions: an array of colors, an image
descriptor pointing at that array and a frame descriptor pairing the image
with its duration in seconds. An array of frame pointers and the sprite
definition itself follow the last frame. The engine's sprite.h must declare
struct color with four uint8_t members, struct image with data, width and
height, struct sprite_frame with image and duration and struct sprite_def
with frames, num_frames and loop.
*/
package sprite

import (
	"path"

	"github.com/bodgit/palc/cgen"
	"github.com/bodgit/palc/raster"
	"github.com/bodgit/palc/symbol"
	"github.com/pkg/errors"
)

// EngineHeader is the engine header declaring the sprite structures
const EngineHeader = "sprite.h"

// Frame is one compiled frame. Duration is in seconds.
type Frame struct {
	Pixels   PixelGrid
	Duration float64
}

// Sprite is a compiled sprite.
type Sprite struct {
	Names  symbol.Names
	Width  int
	Height int
	Frames []Frame
	Loop   bool
}

var errNoFrames = errors.New("sprite: image has no frames")

// Compile converts every frame of m. A single frame sprite never loops.
func Compile(name string, m *raster.Image, loop bool) (*Sprite, error) {
	if len(m.Frames) == 0 {
		return nil, errNoFrames
	}

	s := &Sprite{
		Names:  symbol.New(name),
		Width:  m.Width,
		Height: m.Height,
		Frames: make([]Frame, 0, len(m.Frames)),
		Loop:   loop && len(m.Frames) > 1,
	}

	for i, frame := range m.Frames {
		grid, err := DecodeFrame(m, i)
		if err != nil {
			return nil, err
		}
		s.Frames = append(s.Frames, Frame{
			Pixels:   grid,
			Duration: frame.Duration / 1000,
		})
	}

	return s, nil
}

func (s *Sprite) imageData(i int) cgen.Decl {
	pix := s.Frames[i].Pixels.Pix
	elements := make([]string, len(pix))
	for j, c := range pix {
		elements[j] = c.String()
	}

	return cgen.Array{
		Static:     true,
		Type:       "struct color",
		Name:       s.Names.ImageData(i),
		Len:        cgen.Mul(s.Width, s.Height),
		Elements:   elements,
		PerLine:    s.Width,
		Terminated: true,
	}
}

func (s *Sprite) image(i int) cgen.Decl {
	return cgen.Struct{
		Static: true,
		Type:   "struct image",
		Name:   s.Names.Image(i),
		Fields: []cgen.Field{
			{Name: "data", Value: s.Names.ImageData(i)},
			{Name: "width", Value: cgen.Int(s.Width)},
			{Name: "height", Value: cgen.Int(s.Height)},
		},
	}
}

func (s *Sprite) frame(i int) cgen.Decl {
	return cgen.Struct{
		Static: true,
		Type:   "struct sprite_frame",
		Name:   s.Names.Frame(i),
		Fields: []cgen.Field{
			{Name: "image", Value: cgen.Ref(s.Names.Image(i))},
			{Name: "duration", Value: cgen.Float(s.Frames[i].Duration)},
		},
	}
}

func (s *Sprite) frameArray() cgen.Decl {
	elements := make([]string, len(s.Frames))
	for i := range s.Frames {
		elements[i] = cgen.Ref(s.Names.Frame(i))
	}

	return cgen.Array{
		Type:     "struct sprite_frame",
		Pointer:  true,
		Name:     s.Names.Frames(),
		Len:      cgen.Int(len(s.Frames)),
		Elements: elements,
		PerLine:  1,
	}
}

func (s *Sprite) definition() cgen.Decl {
	return cgen.Struct{
		Type: "struct sprite_def",
		Name: s.Names.Sprite(),
		Fields: []cgen.Field{
			{Name: "frames", Value: s.Names.Frames()},
			{Name: "num_frames", Value: cgen.Int(len(s.Frames))},
			{Name: "loop", Value: cgen.Bool(s.Loop)},
		},
	}
}

// Definitions returns every definition of the sprite in emission order.
func (s *Sprite) Definitions() []cgen.Decl {
	decls := make([]cgen.Decl, 0, 3*len(s.Frames)+2)
	for i := range s.Frames {
		decls = append(decls, s.imageData(i), s.image(i), s.frame(i))
	}
	return append(decls, s.frameArray(), s.definition())
}

// Source returns the source file. includePath is prepended to the name of
// the sprite's own header.
func (s *Sprite) Source(includePath string) *cgen.File {
	f := &cgen.File{}
	f.Add(
		cgen.Include{Path: path.Join(includePath, s.Names.Sprite()) + ".h"},
		cgen.Include{Path: EngineHeader},
		cgen.Blank{},
	)
	f.Add(s.Definitions()...)
	return f
}

// Header returns the header file declaring the sprite.
func (s *Sprite) Header() *cgen.File {
	f := &cgen.File{}
	f.Add(
		cgen.Pragma{Directive: "once"},
		cgen.Blank{},
		cgen.Include{Path: EngineHeader},
		cgen.Blank{},
		cgen.Extern{Type: "struct sprite_def", Name: s.Names.Sprite()},
	)
	return f
}
