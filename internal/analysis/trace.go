// SPDX-License-Identifier: MIT
package analysis

import (
	"fmt"
	"strings"

	"soundsystem/internal/wave"
)

// TraceReducer turns raw samples into the point amplitudes a trace line draws.
// Implementations reuse dst when it has enough capacity and are called from the
// UI goroutine only.
type TraceReducer interface {
	Reduce(dst []float32, samples []int16, points int) ([]float32, error)
	MinSamples(points int) int
}

// Compile-time checks for interface implementations.
var _ TraceReducer = (*wave.Reducer)(nil)
var _ TraceReducer = (*SpectrumReducer)(nil)

// Mode selects what a trace shows.
type Mode string

const (
	ModeWaveform Mode = "waveform"
	ModeSpectrum Mode = "spectrum"
)

// ParseMode converts a name (case-insensitive) to a Mode.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case ModeWaveform, ModeSpectrum:
		return m, nil
	case "":
		return ModeWaveform, nil
	default:
		return ModeWaveform, fmt.Errorf("unknown trace mode '%s' (want %s or %s)", name, ModeWaveform, ModeSpectrum)
	}
}

// NewTraceReducer returns the reducer for mode. windowType is only used by the
// spectrum mode.
func NewTraceReducer(mode Mode, windowType WindowFunc) (TraceReducer, error) {
	switch mode {
	case ModeWaveform:
		return wave.NewReducer(), nil
	case ModeSpectrum:
		return NewSpectrumReducer(windowType), nil
	default:
		return nil, fmt.Errorf("unknown trace mode '%s'", mode)
	}
}
