package palc

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/palc/registry"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dirs struct {
	in, src, inc string
}

func setup(t *testing.T) dirs {
	t.Helper()
	root := t.TempDir()
	d := dirs{
		in:  filepath.Join(root, "in"),
		src: filepath.Join(root, "src"),
		inc: filepath.Join(root, "include"),
	}
	for _, dir := range []string{d.in, d.src, d.inc} {
		require.NoError(t, os.Mkdir(dir, 0755))
	}
	return d
}

func newTestCompiler(t *testing.T, registryFile string) *Compiler {
	t.Helper()
	c, err := New(registryFile, log.New(ioutil.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func writeGIF(t *testing.T, file string, delays ...int) {
	t.Helper()

	p := color.Palette{
		color.RGBA{10, 20, 30, 255},
		color.RGBA{1, 2, 3, 255},
	}

	g := &gif.GIF{}
	for _, d := range delays {
		m := image.NewPaletted(image.Rect(0, 0, 2, 1), p)
		m.Pix[1] = 1
		g.Image = append(g.Image, m)
		g.Delay = append(g.Delay, d)
	}

	b := new(bytes.Buffer)
	require.NoError(t, gif.EncodeAll(b, g))
	require.NoError(t, ioutil.WriteFile(file, b.Bytes(), 0644))
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	infos, err := ioutil.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names
}

func readFile(t *testing.T, file string) string {
	t.Helper()
	b, err := ioutil.ReadFile(file)
	require.NoError(t, err)
	return string(b)
}

func TestSprite(t *testing.T) {
	d := setup(t)
	img := filepath.Join(d.in, "player walk.gif")
	writeGIF(t, img, 10, 15, 0)

	c := newTestCompiler(t, "")
	require.NoError(t, c.Sprite(img, d.src, d.inc, "sprites", true))

	assert.Equal(t, []string{"player_walk.c"}, listDir(t, d.src))
	assert.Equal(t, []string{"player_walk.h"}, listDir(t, d.inc))

	src := readFile(t, filepath.Join(d.src, "player_walk.c"))
	assert.Contains(t, src, "#include \"sprites/sprite_player_walk.h\"\n#include \"sprite.h\"\n\n")
	assert.Contains(t, src, "static struct color sprite_player_walk_image0_data[2 * 1] = {\n    {0,0,0,0},{1,2,3,255},\n};\n")
	assert.Contains(t, src, "    .duration = 0.1\n")
	assert.Contains(t, src, "    .duration = 0.15\n")
	assert.Contains(t, src, "    .duration = 0.0\n")
	assert.Contains(t, src, "struct sprite_frame *sprite_player_walk_frames[3] = {\n    &sprite_player_walk_frame0,\n    &sprite_player_walk_frame1,\n    &sprite_player_walk_frame2\n};\n")
	assert.Contains(t, src, "    .loop = 1\n")

	assert.Equal(t, "#pragma once\n\n#include \"sprite.h\"\n\nextern struct sprite_def sprite_player_walk;\n", readFile(t, filepath.Join(d.inc, "player_walk.h")))
}

func TestSpriteDeterministic(t *testing.T) {
	d := setup(t)
	img := filepath.Join(d.in, "coin.gif")
	writeGIF(t, img, 5, 5)

	c := newTestCompiler(t, "")

	require.NoError(t, c.Sprite(img, d.src, d.inc, "", false))
	first := readFile(t, filepath.Join(d.src, "coin.c"))

	require.NoError(t, c.Sprite(img, d.src, d.inc, "", false))
	assert.Equal(t, first, readFile(t, filepath.Join(d.src, "coin.c")))
}

func TestSpriteMissingOutputDirectory(t *testing.T) {
	d := setup(t)
	img := filepath.Join(d.in, "coin.gif")
	writeGIF(t, img, 0)

	c := newTestCompiler(t, "")

	err := c.Sprite(img, filepath.Join(d.src, "missing"), d.inc, "", true)
	assert.Equal(t, ErrOutputDirectoryMissing, errors.Cause(err))

	err = c.Sprite(img, d.src, img, "", true)
	assert.Equal(t, ErrOutputDirectoryMissing, errors.Cause(err))

	assert.Empty(t, listDir(t, d.src))
	assert.Empty(t, listDir(t, d.inc))
}

func TestSpriteBadInput(t *testing.T) {
	d := setup(t)
	c := newTestCompiler(t, "")

	err := c.Sprite(filepath.Join(d.in, "missing.gif"), d.src, d.inc, "", true)
	assert.Equal(t, ErrInputNotFound, errors.Cause(err))

	garbage := filepath.Join(d.in, "garbage.png")
	require.NoError(t, ioutil.WriteFile(garbage, []byte("definitely not a png"), 0644))

	err = c.Sprite(garbage, d.src, d.inc, "", true)
	assert.Equal(t, ErrInputUnreadable, errors.Cause(err))

	assert.Empty(t, listDir(t, d.src))
	assert.Empty(t, listDir(t, d.inc))
}

func TestSpriteWriteFailure(t *testing.T) {
	d := setup(t)
	img := filepath.Join(d.in, "coin.gif")
	writeGIF(t, img, 0)

	// A directory in the way of the source file
	require.NoError(t, os.Mkdir(filepath.Join(d.src, "coin.c"), 0755))

	c := newTestCompiler(t, "")
	err := c.Sprite(img, d.src, d.inc, "", true)
	assert.Equal(t, ErrWriteFailure, errors.Cause(err))

	// The header is never attempted
	assert.Empty(t, listDir(t, d.inc))
}

func TestSpriteRegistryCollision(t *testing.T) {
	d := setup(t)
	first := filepath.Join(d.in, "a!b.gif")
	second := filepath.Join(d.in, "a_b.gif")
	writeGIF(t, first, 0)
	writeGIF(t, second, 0)

	c := newTestCompiler(t, filepath.Join(t.TempDir(), "registry.db"))

	require.NoError(t, c.Sprite(first, d.src, d.inc, "", true))
	// Recompiling the same file is fine
	require.NoError(t, c.Sprite(first, d.src, d.inc, "", true))

	require.NoError(t, os.Remove(filepath.Join(d.src, "a_b.c")))
	require.NoError(t, os.Remove(filepath.Join(d.inc, "a_b.h")))

	err := c.Sprite(second, d.src, d.inc, "", true)
	assert.Equal(t, registry.ErrSymbolCollision, errors.Cause(err))
	assert.Empty(t, listDir(t, d.src))
}

func TestMIDI(t *testing.T) {
	d := setup(t)

	var files []string
	for _, name := range []string{"title.mid", "level 1.midi", "boss.mid", "credits.mid", "gameover.mid"} {
		file := filepath.Join(d.in, name)
		require.NoError(t, ioutil.WriteFile(file, []byte("MThd"), 0644))
		files = append(files, file)
	}

	c := newTestCompiler(t, "")
	require.NoError(t, c.MIDI(files, d.src, d.inc, "music"))

	assert.ElementsMatch(t, []string{"title.c", "level 1.c", "boss.c", "credits.c", "gameover.c"}, listDir(t, d.src))
	assert.ElementsMatch(t, []string{"title.h", "level 1.h", "boss.h", "credits.h", "gameover.h"}, listDir(t, d.inc))

	src := readFile(t, filepath.Join(d.src, "level 1.c"))
	assert.Contains(t, src, "#include \"music/level 1.h\"\n")
	assert.Contains(t, src, "const uint8_t level_1_midi_data[4] = {\n    0x4d,0x54,0x68,0x64,\n};\n")
}

func TestMIDIFailures(t *testing.T) {
	d := setup(t)
	c := newTestCompiler(t, "")

	err := c.MIDI([]string{filepath.Join(d.in, "song.wav")}, d.src, d.inc, "")
	assert.Error(t, err)

	err = c.MIDI([]string{filepath.Join(d.in, "missing.mid")}, d.src, d.inc, "")
	assert.Equal(t, ErrInputNotFound, errors.Cause(err))

	err = c.MIDI([]string{filepath.Join(d.in, "missing.mid")}, filepath.Join(d.src, "nope"), d.inc, "")
	assert.Equal(t, ErrOutputDirectoryMissing, errors.Cause(err))

	assert.Empty(t, listDir(t, d.src))
}

func TestMIDIRegistryCollision(t *testing.T) {
	d := setup(t)

	var files []string
	for _, name := range []string{"a b.mid", "a_b.mid"} {
		file := filepath.Join(d.in, name)
		require.NoError(t, ioutil.WriteFile(file, []byte("MThd"), 0644))
		files = append(files, file)
	}

	c := newTestCompiler(t, filepath.Join(t.TempDir(), "registry.db"))

	err := c.MIDI(files, d.src, d.inc, "")
	assert.Equal(t, registry.ErrSymbolCollision, errors.Cause(err))
}

func TestWAV(t *testing.T) {
	d := setup(t)

	file := filepath.Join(d.in, "laser-shot.wav")
	f, err := os.Create(file)
	require.NoError(t, err)

	n := 64
	silence := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if n == 0 {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && n > 0; i, n = i+1, n-1 {
			samples[i] = [2]float64{}
		}
		return i, true
	})
	require.NoError(t, wav.Encode(f, silence, beep.Format{SampleRate: 44100, NumChannels: 1, Precision: 2}))
	require.NoError(t, f.Close())

	c := newTestCompiler(t, "")
	require.NoError(t, c.WAV(file, d.src, d.inc, "", 44100))

	assert.Equal(t, []string{"lasershot_wav.c"}, listDir(t, d.src))
	assert.Equal(t, []string{"lasershot_wav.h"}, listDir(t, d.inc))
	assert.Contains(t, readFile(t, filepath.Join(d.src, "lasershot_wav.c")), "static const int16_t lasershot_wav_data[64] = {\n")

	err = c.WAV(filepath.Join(d.in, "laser.ogg"), d.src, d.inc, "", 44100)
	assert.Error(t, err)
}
