// SPDX-License-Identifier: MIT
package engine

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// decoderFunc decodes an open file into a Track.
type decoderFunc func(f *os.File) (*Track, error)

var decoders = map[string]decoderFunc{
	".wav": decodeWAV,
	".mp3": decodeMP3,
	".ogg": decodeOGG,
}

// SupportedExtensions lists the file extensions Decode accepts.
func SupportedExtensions() []string {
	return []string{".mp3", ".ogg", ".wav"}
}

// Decode reads the whole file at path, choosing the decoder by extension.
func Decode(path string) (*Track, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	track, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if track.Channels < 1 || track.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedFormat, track.Channels, track.SampleRate)
	}
	return track, nil
}

func decodeWAV(f *os.File) (*Track, error) {
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%w: not a PCM WAV file", ErrUnsupportedFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	depth := int(d.BitDepth)
	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		switch depth {
		case 8:
			// 8-bit WAV is unsigned.
			samples[i] = int16((v - 128) << 8)
		case 16:
			samples[i] = int16(v)
		case 24:
			samples[i] = int16(v >> 8)
		case 32:
			samples[i] = int16(v >> 16)
		default:
			return nil, fmt.Errorf("%w: %d-bit WAV", ErrUnsupportedFormat, depth)
		}
	}

	return &Track{
		Samples:    samples,
		Channels:   buf.Format.NumChannels,
		SampleRate: buf.Format.SampleRate,
	}, nil
}

// decodeMP3 relies on go-mp3 always producing 16-bit little-endian stereo.
func decodeMP3(f *os.File) (*Track, error) {
	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}
	return &Track{Samples: samples, Channels: 2, SampleRate: dec.SampleRate()}, nil
}

func decodeOGG(f *os.File) (*Track, error) {
	data, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, err
	}

	samples := make([]int16, len(data))
	for i, v := range data {
		samples[i] = floatToInt16(v)
	}
	return &Track{Samples: samples, Channels: format.Channels, SampleRate: format.SampleRate}, nil
}

func floatToInt16(v float32) int16 {
	s := math.Round(float64(v) * math.MaxInt16)
	return int16(max(math.MinInt16, min(math.MaxInt16, s)))
}
