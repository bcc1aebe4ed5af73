/*
Package wav converts WAV files into 16-bit mono sample arrays.

Input of any channel count, bit depth and sample rate understood by beep is
mixed down to one channel, resampled to the engine's playback rate and
quantized to signed 16-bit samples.
*/
package wav

import (
	"io"
	"math"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bodgit/palc/cgen"
	"github.com/gopxl/beep/v2"
	beepwav "github.com/gopxl/beep/v2/wav"
	"github.com/pkg/errors"
)

const (
	// DefaultSampleRate is the playback rate of the engine mixer
	DefaultSampleRate = 44100

	// AudioHeader is the engine header declaring struct wave_data
	AudioHeader = "audio.h"

	resampleQuality = 4
	samplesPerLine  = 31
	bufferSize      = 512
)

var (
	// ErrNotWAV is returned for files without a .wav suffix
	ErrNotWAV = errors.New("wav: input file is not a wav file")

	errRate = errors.New("wav: invalid sample rate")

	notAlnum = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// Symbol strips everything but letters, digits and underscores from stem
// and appends "_wav".
func Symbol(stem string) string {
	return notAlnum.ReplaceAllString(stem, "") + "_wav"
}

// Sound is a decoded sound ready to be emitted.
type Sound struct {
	Symbol  string
	Rate    int
	Samples []int16
}

func quantize(v float64) int16 {
	v = math.Round(v * (1 << 15))
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// Decode reads a WAV stream from r and converts it to mono samples at rate.
func Decode(r io.Reader, rate int) ([]int16, error) {
	if rate <= 0 {
		return nil, errors.Wrapf(errRate, "%d", rate)
	}

	streamer, format, err := beepwav.Decode(r)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != beep.SampleRate(rate) {
		s = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(rate), streamer)
	}

	var samples []int16
	buf := make([][2]float64, bufferSize)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			// Mono input is duplicated into both channels
			samples = append(samples, quantize((frame[0]+frame[1])/2))
		}
		if !ok {
			break
		}
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

// Open decodes the WAV file at rate.
func Open(file string, rate int) (*Sound, error) {
	if filepath.Ext(file) != ".wav" {
		return nil, errors.Wrap(ErrNotWAV, file)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples, err := Decode(f, rate)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(file)

	return &Sound{
		Symbol:  Symbol(strings.TrimSuffix(base, filepath.Ext(base))),
		Rate:    rate,
		Samples: samples,
	}, nil
}

// SourceName returns the file name of the generated source
func (s *Sound) SourceName() string {
	return s.Symbol + ".c"
}

// HeaderName returns the file name of the generated header
func (s *Sound) HeaderName() string {
	return s.Symbol + ".h"
}

func (s *Sound) data() string {
	return s.Symbol + "_data"
}

// Source returns the source file. includePath is prepended to the name of
// the sound's own header.
func (s *Sound) Source(includePath string) *cgen.File {
	elements := make([]string, len(s.Samples))
	for i, v := range s.Samples {
		elements[i] = cgen.Int(int(v))
	}

	f := &cgen.File{}
	f.Add(
		cgen.Include{Path: path.Join(includePath, s.HeaderName())},
		cgen.Blank{},
		cgen.Include{Path: "stdint.h", System: true},
		cgen.Blank{},
		cgen.Array{
			Static:     true,
			Type:       "const int16_t",
			Name:       s.data(),
			Len:        cgen.Int(len(s.Samples)),
			Elements:   elements,
			PerLine:    samplesPerLine,
			Terminated: true,
		},
		cgen.Blank{},
		cgen.Struct{
			Type: "const struct wave_data",
			Name: s.Symbol,
			Fields: []cgen.Field{
				{Name: "data", Value: s.data()},
				{Name: "length", Value: cgen.Int(len(s.Samples))},
			},
		},
	)
	return f
}

// Header returns the header file declaring the sound.
func (s *Sound) Header() *cgen.File {
	f := &cgen.File{}
	f.Add(
		cgen.Pragma{Directive: "once"},
		cgen.Blank{},
		cgen.Include{Path: "stdint.h", System: true},
		cgen.Blank{},
		cgen.Include{Path: AudioHeader},
		cgen.Blank{},
		cgen.Extern{Type: "const struct wave_data", Name: s.Symbol},
	)
	return f
}
