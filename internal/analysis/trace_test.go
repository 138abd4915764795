// SPDX-License-Identifier: MIT
package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundsystem/internal/wave"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"waveform", ModeWaveform, false},
		{"Spectrum", ModeSpectrum, false},
		{"", ModeWaveform, false},
		{"oscilloscope", ModeWaveform, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantErr, err != nil, tt.in)
	}
}

func TestNewTraceReducer(t *testing.T) {
	r, err := NewTraceReducer(ModeWaveform, Hann)
	require.NoError(t, err)
	assert.IsType(t, &wave.Reducer{}, r)

	r, err = NewTraceReducer(ModeSpectrum, Hamming)
	require.NoError(t, err)
	assert.IsType(t, &SpectrumReducer{}, r)

	_, err = NewTraceReducer(Mode("bars"), Hann)
	assert.Error(t, err)
}

func TestMinSamplesIsAccepted(t *testing.T) {
	tests := []struct {
		mode   Mode
		points int
		want   int
	}{
		{ModeWaveform, 100, 100},
		{ModeWaveform, 1080, 1080},
		{ModeSpectrum, 100, 256},
		{ModeSpectrum, 1080, 4096},
	}
	for _, tt := range tests {
		r, err := NewTraceReducer(tt.mode, Hann)
		require.NoError(t, err)

		need := r.MinSamples(tt.points)
		assert.Equal(t, tt.want, need, "%s/%d", tt.mode, tt.points)

		out, err := r.Reduce(nil, make([]int16, need), tt.points)
		require.NoError(t, err, "%s/%d", tt.mode, tt.points)
		assert.Len(t, out, tt.points)

		_, err = r.Reduce(nil, make([]int16, need-1), tt.points)
		assert.ErrorIs(t, err, wave.ErrInsufficientSamples, "%s/%d", tt.mode, tt.points)
	}
}
