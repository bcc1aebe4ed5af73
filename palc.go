/*
Package palc compiles images and audio into C source for the PAL engine.

Every asset becomes a source file holding its data as static definitions
and a header declaring the single symbol other code links against. Nothing
is decoded at runtime.
*/
package palc

import (
	"log"

	"github.com/bodgit/palc/registry"
)

// Compiler converts assets. The zero value is not usable; use New.
type Compiler struct {
	registry *registry.Registry
	logger   *log.Logger
}

// New returns a Compiler logging to logger. If registryFile is not empty,
// generated symbols are recorded there and a symbol claimed by a different
// source file is an error.
func New(registryFile string, logger *log.Logger) (*Compiler, error) {
	c := &Compiler{
		logger: logger,
	}

	if registryFile != "" {
		r, err := registry.Open(registryFile)
		if err != nil {
			return nil, err
		}
		c.registry = r
	}

	return c, nil
}

// Close releases the symbol registry, if any
func (c *Compiler) Close() error {
	if c.registry == nil {
		return nil
	}
	return c.registry.Close()
}
