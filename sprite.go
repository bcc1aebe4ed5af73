package palc

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/palc/raster"
	"github.com/bodgit/palc/sprite"
	"github.com/bodgit/palc/symbol"
	"github.com/pkg/errors"
)

// Decode the image, hashing the whole file on the way
func decodeImage(file string) (*raster.Image, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", inputError(file, err)
	}
	defer f.Close()

	h := sha1.New()
	m, err := raster.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, "", inputError(file, err)
	}

	if _, err := io.Copy(h, f); err != nil {
		return nil, "", inputError(file, err)
	}

	return m, fmt.Sprintf("%X", h.Sum(nil)), nil
}

// Sprite compiles the image file into a sprite named after the file. The
// source is written to sourceDir and the header to includeDir; includePath
// is prepended to the header name included by the source. Nothing is
// written unless every frame converts.
func (c *Compiler) Sprite(file, sourceDir, includeDir, includePath string, loop bool) error {
	if err := checkDirectories(sourceDir, includeDir); err != nil {
		return err
	}

	m, sum, err := decodeImage(file)
	if err != nil {
		return err
	}
	c.logger.Printf("Decoded \"%s\" as %s, %dx%d with %d frame(s)\n", file, m.Format, m.Width, m.Height, m.Len())

	name := symbol.Sanitize(stem(file))

	s, err := sprite.Compile(name, m, loop)
	if err != nil {
		return errors.Wrapf(ErrMalformedFrame, "%s: %v", file, err)
	}

	if err := c.claim(s.Names.Sprite(), file, sum); err != nil {
		return err
	}

	return c.writeFiles(filepath.Join(sourceDir, name+".c"), s.Source(includePath), filepath.Join(includeDir, name+".h"), s.Header())
}
