package palc

import (
	"context"
	"path/filepath"

	"github.com/bodgit/palc/midi"
	"github.com/bodgit/palc/wav"
	"github.com/pkg/errors"
)

func (c *Compiler) midi(file, sourceDir, includeDir, includePath string) error {
	s, err := midi.Open(file)
	if err != nil {
		return inputError(file, err)
	}

	sum, err := hashFile(file)
	if err != nil {
		return inputError(file, err)
	}

	if err := c.claim(s.Symbol()+"_data", file, sum); err != nil {
		return err
	}

	return c.writeFiles(filepath.Join(sourceDir, s.SourceName()), s.Source(includePath), filepath.Join(includeDir, s.HeaderName()), s.Header())
}

// MIDI embeds each MIDI file as a byte array. Files are compiled
// concurrently; the first failure stops the remaining work.
func (c *Compiler) MIDI(files []string, sourceDir, includeDir, includePath string) error {
	if err := checkDirectories(sourceDir, includeDir); err != nil {
		return err
	}

	for _, file := range files {
		if !midi.IsMIDI(file) {
			return errors.Wrap(midi.ErrNotMIDI, file)
		}
	}

	return c.run(context.Background(), files, func(file string) error {
		return c.midi(file, sourceDir, includeDir, includePath)
	})
}

// WAV converts the WAV file into a mono sample array at rate.
func (c *Compiler) WAV(file, sourceDir, includeDir, includePath string, rate int) error {
	if err := checkDirectories(sourceDir, includeDir); err != nil {
		return err
	}

	if filepath.Ext(file) != ".wav" {
		return errors.Wrap(wav.ErrNotWAV, file)
	}

	s, err := wav.Open(file, rate)
	if err != nil {
		return inputError(file, err)
	}
	c.logger.Printf("Decoded \"%s\" to %d samples at %d Hz\n", file, len(s.Samples), s.Rate)

	sum, err := hashFile(file)
	if err != nil {
		return inputError(file, err)
	}

	if err := c.claim(s.Symbol, file, sum); err != nil {
		return err
	}

	return c.writeFiles(filepath.Join(sourceDir, s.SourceName()), s.Source(includePath), filepath.Join(includeDir, s.HeaderName()), s.Header())
}
