// SPDX-License-Identifier: MIT
package analysis

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"soundsystem/internal/log"
	"soundsystem/internal/wave"
	"soundsystem/pkg/bitint"
)

// Pre-allocated buffers for one FFT size.
type fftWorkspace struct {
	input     []float64    // Windowed frame.
	fftOutput []complex128 // N/2 + 1 coefficients.
	magnitude []float64    // Magnitudes summed over all frames.
	window    []float64    // Window coefficients.
	bands     []float64    // Per-band averages before normalization.
}

// SpectrumReducer reduces raw samples to M magnitude bands in [0, 1]. It has the
// same Reduce contract as wave.Reducer so the two are interchangeable behind a
// trace line.
//
// The FFT size is the smallest power of two holding 2*M samples, so every band
// spans at least one bin. Frames are taken back to back (hop = FFT size), the
// trailing partial frame is dropped and the summed spectrum is scaled so the
// loudest band is 1. A Reducer is not safe for concurrent use.
type SpectrumReducer struct {
	windowType    WindowFunc
	fftCalculator *fourier.FFT // Rebuilt when the FFT size changes.
	fftSize       int
	workspace     fftWorkspace
}

// NewSpectrumReducer returns a reducer using the given window function.
func NewSpectrumReducer(windowType WindowFunc) *SpectrumReducer {
	return &SpectrumReducer{windowType: windowType}
}

// FFTSize returns the frame size used by the last successful Reduce call.
func (s *SpectrumReducer) FFTSize() int {
	return s.fftSize
}

// MinSamples returns the FFT frame size used for points, the fewest samples
// Reduce accepts.
func (s *SpectrumReducer) MinSamples(points int) int {
	return bitint.NextPowerOfTwo(2 * points)
}

// Reduce writes points normalized band magnitudes into dst and returns it.
func (s *SpectrumReducer) Reduce(dst []float32, samples []int16, points int) ([]float32, error) {
	if points <= 0 {
		return dst[:0], fmt.Errorf("%w: got %d", wave.ErrInvalidPointCount, points)
	}
	if len(samples) == 0 {
		return dst[:0], wave.ErrEmptyInput
	}
	size := s.MinSamples(points)
	if len(samples) < size {
		return dst[:0], fmt.Errorf("%w: %d samples for a %d point FFT", wave.ErrInsufficientSamples, len(samples), size)
	}
	s.prepare(size, points)

	ws := &s.workspace
	for i := range ws.magnitude {
		ws.magnitude[i] = 0
	}

	frames := len(samples) / size
	for f := range frames {
		frame := samples[f*size : (f+1)*size]
		for i, v := range frame {
			ws.input[i] = wave.Normalize(v) * ws.window[i]
		}
		s.fftCalculator.Coefficients(ws.fftOutput, ws.input)
		for i, c := range ws.fftOutput {
			ws.magnitude[i] += cmplx.Abs(c)
		}
	}

	// The Nyquist bin is left out so the band split is even.
	binsPerBand := (size / 2) / points
	bands := ws.bands[:points]
	for b := range bands {
		bands[b] = floats.Sum(ws.magnitude[b*binsPerBand:(b+1)*binsPerBand]) / float64(binsPerBand)
	}

	if cap(dst) < points {
		dst = make([]float32, points)
	}
	dst = dst[:points]

	peak := floats.Max(bands)
	if peak == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return dst, nil
	}
	for i, v := range bands {
		dst[i] = float32(v / peak)
	}
	return dst, nil
}

func (s *SpectrumReducer) prepare(size, points int) {
	if size != s.fftSize {
		log.Debugf("Spectrum: resizing FFT to %d points (window %v)", size, s.windowType)
		s.fftCalculator = fourier.NewFFT(size)
		s.fftSize = size
		s.workspace.input = make([]float64, size)
		s.workspace.fftOutput = make([]complex128, size/2+1)
		s.workspace.magnitude = make([]float64, size/2+1)
		s.workspace.window = make([]float64, size)
		applyWindow(s.workspace.window, s.windowType)
	}
	if cap(s.workspace.bands) < points {
		s.workspace.bands = make([]float64, points)
	}
}
