// SPDX-License-Identifier: MIT
package engine

import "time"

// Track is a fully decoded file: interleaved 16-bit samples plus their layout.
// It is immutable once returned by Decode.
type Track struct {
	Samples    []int16 // Interleaved, Channels values per frame.
	Channels   int
	SampleRate int
}

// Frames returns the number of sample frames.
func (t *Track) Frames() int {
	if t.Channels == 0 {
		return 0
	}
	return len(t.Samples) / t.Channels
}

// Duration returns the playing time of the track.
func (t *Track) Duration() time.Duration {
	if t.SampleRate == 0 {
		return 0
	}
	return time.Duration(t.Frames()) * time.Second / time.Duration(t.SampleRate)
}

// Mono returns one sample per frame, the average of all channels.
func (t *Track) Mono() []int16 {
	if t.Channels <= 1 {
		return t.Samples
	}
	frames := t.Frames()
	mono := make([]int16, frames)
	for f := range frames {
		var sum int32
		for _, s := range t.Samples[f*t.Channels : (f+1)*t.Channels] {
			sum += int32(s)
		}
		mono[f] = int16(sum / int32(t.Channels))
	}
	return mono
}
