// SPDX-License-Identifier: MIT
package events

import (
	"fmt"

	"soundsystem/internal/log"
)

// Reporter receives observer failures. It runs on the loop goroutine.
type Reporter func(err error)

// Bridge holds the playback and extraction registries and dispatches published
// events to them on the Loop's consumer goroutine.
type Bridge struct {
	loop       *Loop
	playback   registry[PlaybackObserver]
	extraction registry[ExtractionObserver]
	report     Reporter
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithReporter replaces the default reporter, which logs at error level.
func WithReporter(r Reporter) Option {
	return func(b *Bridge) {
		if r != nil {
			b.report = r
		}
	}
}

// NewBridge returns a bridge delivering on loop.
func NewBridge(loop *Loop, opts ...Option) *Bridge {
	b := &Bridge{
		loop: loop,
		report: func(err error) {
			log.Errorf("Bridge: %v", err)
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddPlaybackObserver registers o. It returns false if o is nil or already registered.
func (b *Bridge) AddPlaybackObserver(o PlaybackObserver) bool { return b.playback.add(o) }

// RemovePlaybackObserver unregisters o. It returns false if o was not registered.
func (b *Bridge) RemovePlaybackObserver(o PlaybackObserver) bool { return b.playback.remove(o) }

// AddExtractionObserver registers o. It returns false if o is nil or already registered.
func (b *Bridge) AddExtractionObserver(o ExtractionObserver) bool { return b.extraction.add(o) }

// RemoveExtractionObserver unregisters o. It returns false if o was not registered.
func (b *Bridge) RemoveExtractionObserver(o ExtractionObserver) bool {
	return b.extraction.remove(o)
}

// Observers returns the number of registered playback and extraction observers.
func (b *Bridge) Observers() (playback, extraction int) {
	return b.playback.len(), b.extraction.len()
}

// Publish queues ev for delivery and returns immediately. Events published
// from one goroutine are delivered in publish order. Events published after
// the loop is closed are dropped.
func (b *Bridge) Publish(ev Event) {
	if ev == nil {
		return
	}
	if !b.loop.Post(func() { b.dispatch(ev) }) {
		log.Warnf("Bridge: loop closed, dropping %v", ev)
	}
}

func (b *Bridge) dispatch(ev Event) {
	switch e := ev.(type) {
	case ExtractionStarted:
		broadcast(b, &b.extraction, ev, ExtractionObserver.OnExtractionStarted)
	case ExtractionCompleted:
		broadcast(b, &b.extraction, ev, ExtractionObserver.OnExtractionCompleted)
	case ExtractionFailed:
		broadcast(b, &b.extraction, ev, func(o ExtractionObserver) {
			if f, ok := o.(ExtractionFailureObserver); ok {
				f.OnExtractionFailed(e.Err)
			}
		})
	case PlaybackStateChanged:
		broadcast(b, &b.playback, ev, func(o PlaybackObserver) {
			o.OnPlayingStatusChanged(e.Playing)
		})
	case TrackEnded:
		broadcast(b, &b.playback, ev, PlaybackObserver.OnEndOfTrack)
	case TrackStopped:
		broadcast(b, &b.playback, ev, PlaybackObserver.OnTrackStopped)
	}
}

// broadcast calls fn for every member registered when the broadcast started.
// Membership is checked again right before each call, so a member removed by
// an earlier callback is skipped. Callbacks run without the registry lock
// held and may add or remove observers.
func broadcast[O any](b *Bridge, r *registry[O], ev Event, fn func(O)) {
	for _, o := range r.snapshot() {
		if !r.contains(o) {
			continue
		}
		invoke(b, ev, o, fn)
	}
}

// invoke calls fn(o), turning a panic into a report.
func invoke[O any](b *Bridge, ev Event, o O, fn func(O)) {
	defer func() {
		if p := recover(); p != nil {
			b.report(fmt.Errorf("%w: %T on %v: %v", ErrObserverInvocation, o, ev, p))
		}
	}()
	fn(o)
}
