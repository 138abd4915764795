// SPDX-License-Identifier: MIT
package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWAV16Stereo(t *testing.T) {
	data := []int{100, -100, 32767, -32768, 0, 2000}
	path := writeWAV(t, "stereo.wav", data, 2, 16)

	track, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, 2, track.Channels)
	assert.Equal(t, 44100, track.SampleRate)
	assert.Equal(t, []int16{100, -100, 32767, -32768, 0, 2000}, track.Samples)
	assert.Equal(t, 3, track.Frames())
	assert.Equal(t, []int16{0, 0, 1000}, track.Mono())
}

func TestDecodeWAV24Bit(t *testing.T) {
	data := []int{1000 << 8, -1000 << 8, 32767 << 8}
	path := writeWAV(t, "deep.WAV", data, 1, 24)

	track, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, []int16{1000, -1000, 32767}, track.Samples)
	// Mono tracks are returned as is.
	assert.Equal(t, track.Samples, track.Mono())
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.wav")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not RIFF"), 0o644))

	_, err := Decode(filepath.Join(dir, "song.flac"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat), "unknown extension: %v", err)

	_, err = Decode(garbage)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat), "invalid WAV: %v", err)

	_, err = Decode(filepath.Join(dir, "missing.wav"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "missing file: %v", err)
}

func TestDecodeEmptyCompressedFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"empty.mp3", "empty.ogg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		track, err := Decode(path)
		assert.Nil(t, track, name)
		assert.ErrorContains(t, err, "decode "+name)
	}
}

func TestTrackDuration(t *testing.T) {
	track := &Track{Samples: make([]int16, 44100*2), Channels: 2, SampleRate: 44100}
	assert.Equal(t, time.Second, track.Duration())
	assert.Zero(t, (&Track{}).Duration())
	assert.Zero(t, (&Track{}).Frames())
}

func TestFloatToInt16(t *testing.T) {
	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{1.5, 32767},
		{-2, -32768},
		{0.5, 16384},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, floatToInt16(tt.in), "floatToInt16(%v)", tt.in)
	}
}

func TestSupportedExtensions(t *testing.T) {
	for _, ext := range SupportedExtensions() {
		_, ok := decoders[ext]
		assert.True(t, ok, ext)
	}
	assert.Len(t, SupportedExtensions(), len(decoders))
}
