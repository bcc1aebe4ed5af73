/*
Package midi embeds standard MIDI files as constant byte arrays.

The engine parses the file itself at runtime so the bytes are copied
verbatim, 31 to a line.
*/
package midi

import (
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bodgit/palc/cgen"
	"github.com/bodgit/palc/symbol"
	"github.com/pkg/errors"
)

const bytesPerLine = 31

// ErrNotMIDI is returned for files without a .mid or .midi suffix
var ErrNotMIDI = errors.New("midi: input file is not a midi file")

// IsMIDI reports whether file has a MIDI suffix
func IsMIDI(file string) bool {
	switch filepath.Ext(file) {
	case ".mid", ".midi":
		return true
	}
	return false
}

// Song is a MIDI file ready to be emitted.
type Song struct {
	// Stem is the file name without its extension, used for the output
	// file names.
	Stem string
	Data []byte
}

// New returns the Song for file contents data.
func New(file string, data []byte) (*Song, error) {
	if !IsMIDI(file) {
		return nil, errors.Wrap(ErrNotMIDI, file)
	}

	base := filepath.Base(file)

	return &Song{
		Stem: strings.TrimSuffix(base, filepath.Ext(base)),
		Data: data,
	}, nil
}

// Open reads the MIDI file.
func Open(file string) (*Song, error) {
	if !IsMIDI(file) {
		return nil, errors.Wrap(ErrNotMIDI, file)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return New(file, b)
}

// Symbol returns the symbol prefix of the song
func (s *Song) Symbol() string {
	return symbol.Sanitize(s.Stem) + "_midi"
}

// SourceName returns the file name of the generated source
func (s *Song) SourceName() string {
	return s.Stem + ".c"
}

// HeaderName returns the file name of the generated header
func (s *Song) HeaderName() string {
	return s.Stem + ".h"
}

func (s *Song) data() string {
	return s.Symbol() + "_data"
}

// Source returns the source file. includePath is prepended to the name of
// the song's own header.
func (s *Song) Source(includePath string) *cgen.File {
	elements := make([]string, len(s.Data))
	for i, b := range s.Data {
		elements[i] = cgen.Hex8(b)
	}

	f := &cgen.File{}
	f.Add(
		cgen.Include{Path: path.Join(includePath, s.HeaderName())},
		cgen.Blank{},
		cgen.Include{Path: "stdint.h", System: true},
		cgen.Blank{},
		cgen.Array{
			Type:       "const uint8_t",
			Name:       s.data(),
			Len:        cgen.Int(len(s.Data)),
			Elements:   elements,
			PerLine:    bytesPerLine,
			Terminated: true,
		},
	)
	return f
}

// Header returns the header file declaring the song data.
func (s *Song) Header() *cgen.File {
	f := &cgen.File{}
	f.Add(
		cgen.Pragma{Directive: "once"},
		cgen.Blank{},
		cgen.Include{Path: "stdint.h", System: true},
		cgen.Blank{},
		cgen.Extern{Type: "const uint8_t", Name: s.data(), Len: cgen.Int(len(s.Data))},
	)
	return f
}
