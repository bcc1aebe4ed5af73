package midi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = []byte{'M', 'T', 'h', 'd', 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x00, 0x60}

func TestIsMIDI(t *testing.T) {
	assert.True(t, IsMIDI("theme.mid"))
	assert.True(t, IsMIDI("dir/theme.midi"))
	assert.False(t, IsMIDI("theme.wav"))
	assert.False(t, IsMIDI("theme"))
}

func TestNew(t *testing.T) {
	s, err := New("music/title theme.mid", header)
	require.NoError(t, err)

	assert.Equal(t, "title theme", s.Stem)
	assert.Equal(t, "title_theme_midi", s.Symbol())
	assert.Equal(t, "title theme.c", s.SourceName())
	assert.Equal(t, "title theme.h", s.HeaderName())

	_, err = New("title.wav", header)
	assert.Equal(t, ErrNotMIDI, errors.Cause(err))
}

func TestSource(t *testing.T) {
	s, err := New("jingle.mid", header)
	require.NoError(t, err)

	expected := `#include "audio/jingle.h"

#include <stdint.h>

const uint8_t jingle_midi_data[14] = {
    0x4d,0x54,0x68,0x64,0x00,0x00,0x00,0x06,0x00,0x00,0x00,0x01,0x00,0x60,
};
`
	assert.Equal(t, expected, string(s.Source("audio").Bytes()))
}

func TestSourceWraps(t *testing.T) {
	s, err := New("long.mid", make([]byte, 70))
	require.NoError(t, err)

	lines := strings.Split(string(s.Source("").Bytes()), "\n")
	// includes, blanks, declaration, three data lines, closing brace
	require.Len(t, lines, 10)
	assert.Equal(t, 31, strings.Count(lines[5], "0x"))
	assert.Equal(t, 31, strings.Count(lines[6], "0x"))
	assert.Equal(t, 8, strings.Count(lines[7], "0x"))
	assert.Equal(t, "};", lines[8])
}

func TestHeader(t *testing.T) {
	s, err := New("jingle.midi", header)
	require.NoError(t, err)

	expected := `#pragma once

#include <stdint.h>

extern const uint8_t jingle_midi_data[14];
`
	assert.Equal(t, expected, string(s.Header().Bytes()))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "jingle.mid")
	require.NoError(t, os.WriteFile(file, header, 0644))

	s, err := Open(file)
	require.NoError(t, err)
	assert.Equal(t, header, s.Data)

	_, err = Open(filepath.Join(dir, "missing.mid"))
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
