// SPDX-License-Identifier: MIT
/*
Package wave turns raw 16-bit sample buffers into line geometry.

The pipeline has two stages, both meant to run on the UI goroutine only:

  - Reducer averages fixed-size windows of raw samples into M normalized points.
  - VertexBuilder lays the M points out as M vertical line segments.

Both stages reuse their backing storage between calls so a redraw with the same
point count does not allocate.
*/
package wave

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MaxAmplitude is the largest positive 16-bit sample value. Samples are divided
// by it to land in [-1, 1].
const MaxAmplitude = 32767

// Factor returns how many raw samples are averaged into one point when n samples
// are reduced to m points. The trailing n-m*factor samples are never read.
func Factor(n, m int) (int, error) {
	if m <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPointCount, m)
	}
	if n == 0 {
		return 0, ErrEmptyInput
	}
	if n < m {
		return 0, fmt.Errorf("%w: %d samples for %d points", ErrInsufficientSamples, n, m)
	}
	return n / m, nil
}

// Reducer averages raw samples into a fixed number of points. The zero value is
// ready to use. A Reducer is not safe for concurrent use.
type Reducer struct {
	n, m    int       // Input length and point count the cached factor was computed for.
	factor  int       // Samples per point.
	scratch []float64 // Normalized samples of the current window.
}

// NewReducer returns an empty Reducer.
func NewReducer() *Reducer {
	return &Reducer{}
}

// Factor returns the reduction factor used by the last successful Reduce call,
// or 0 if Reduce has not succeeded yet.
func (r *Reducer) Factor() int {
	return r.factor
}

// MinSamples returns the fewest samples Reduce accepts for points.
func (r *Reducer) MinSamples(points int) int {
	return points
}

// Reduce writes len(samples)/points window averages into dst and returns it,
// growing dst only when its capacity is smaller than points.
func (r *Reducer) Reduce(dst []float32, samples []int16, points int) ([]float32, error) {
	if err := r.prepare(len(samples), points); err != nil {
		return dst[:0], err
	}

	if cap(dst) < points {
		dst = make([]float32, points)
	}
	dst = dst[:points]

	window := r.scratch[:r.factor]
	count := float64(r.factor)
	for i := range points {
		offset := i * r.factor
		for j, s := range samples[offset : offset+r.factor] {
			window[j] = Normalize(s)
		}
		dst[i] = float32(floats.Sum(window) / count)
	}
	return dst, nil
}

// prepare recomputes the factor when the input shape changed since the last call.
func (r *Reducer) prepare(n, m int) error {
	if n == r.n && m == r.m && r.factor > 0 {
		return nil
	}
	factor, err := Factor(n, m)
	if err != nil {
		return err
	}
	r.n, r.m, r.factor = n, m, factor
	if cap(r.scratch) < factor {
		r.scratch = make([]float64, factor)
	}
	return nil
}

// Normalize maps a sample to [-1, 1]. math.MinInt16 would land just below -1
// and is pinned to it.
func Normalize(s int16) float64 {
	if s == -MaxAmplitude-1 {
		return -1
	}
	return float64(s) / MaxAmplitude
}
