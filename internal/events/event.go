// SPDX-License-Identifier: MIT
/*
Package events carries audio engine notifications to the UI goroutine.

Producers call Bridge.Publish from any goroutine. Publish only appends to a
Loop; the goroutine that drains the Loop is the one every observer callback
runs on. Observers register per kind (playback or extraction) and receive
events in insertion order.
*/
package events

import "fmt"

// Event is one engine notification. The set is closed.
type Event interface {
	fmt.Stringer
	event()
}

type (
	// ExtractionStarted is published when decoding begins.
	ExtractionStarted struct{}
	// ExtractionCompleted is published once decoded samples are available.
	ExtractionCompleted struct{}
	// ExtractionFailed is published instead of ExtractionCompleted when decoding fails.
	ExtractionFailed struct{ Err error }
	// PlaybackStateChanged is published on every play/pause transition.
	PlaybackStateChanged struct{ Playing bool }
	// TrackEnded is published when playback reaches the end of the samples.
	TrackEnded struct{}
	// TrackStopped is published after an explicit stop.
	TrackStopped struct{}
)

func (ExtractionStarted) event()    {}
func (ExtractionCompleted) event()  {}
func (ExtractionFailed) event()     {}
func (PlaybackStateChanged) event() {}
func (TrackEnded) event()           {}
func (TrackStopped) event()         {}

func (ExtractionStarted) String() string   { return "ExtractionStarted" }
func (ExtractionCompleted) String() string { return "ExtractionCompleted" }
func (e ExtractionFailed) String() string  { return fmt.Sprintf("ExtractionFailed(%v)", e.Err) }
func (e PlaybackStateChanged) String() string {
	return fmt.Sprintf("PlaybackStateChanged(playing=%t)", e.Playing)
}
func (TrackEnded) String() string   { return "TrackEnded" }
func (TrackStopped) String() string { return "TrackStopped" }
