// SPDX-License-Identifier: MIT
/*
Package app wires the engine, the event bridge and the trace line together for
one UI surface.

A Session is owned by the UI goroutine: it is created when the surface exists,
driven by Frame once per frame and closed when the surface goes away. Engine
events reach it through the bridge and are delivered during Frame.
*/
package app

import (
	"fmt"

	"soundsystem/internal/events"
	"soundsystem/internal/log"
)

// Facade is the audio engine as seen by the UI. *engine.Engine satisfies it.
type Facade interface {
	Extract(path string) error
	ExtractedSamples() ([]int16, error)
	Play(play bool) error
	Stop() error
	IsPlaying() bool
}

// Tracer draws reduced samples. *render.Line satisfies it.
type Tracer interface {
	MinSamples(points int) int
	DrawData(samples []int16, points int) error
	Draw()
	Resize(width float32)
	Close()
}

// Options configures a Session.
type Options struct {
	Points        int // Points per trace; 0 follows the surface width.
	WindowDivisor int // Only the first len/WindowDivisor samples are traced.
}

// Session is the UI-side consumer of engine events.
type Session struct {
	engine Facade
	bridge *events.Bridge
	loop   *events.Loop
	line   Tracer
	opts   Options

	width   int     // Surface width in pixels.
	samples []int16 // Mono mix of the extracted track.
	loaded  bool    // A track has been extracted.
	status  string
	playing bool
	err     error // First trace failure; sticky.
}

// NewSession subscribes a session to bridge. Call Close to unsubscribe.
func NewSession(engine Facade, bridge *events.Bridge, loop *events.Loop, line Tracer, opts Options) *Session {
	if opts.WindowDivisor < 1 {
		opts.WindowDivisor = 1
	}
	s := &Session{
		engine: engine,
		bridge: bridge,
		loop:   loop,
		line:   line,
		opts:   opts,
		status: StatusIdle,
	}
	bridge.AddExtractionObserver(s)
	bridge.AddPlaybackObserver(s)
	return s
}

// Open starts extracting path. The trace appears once extraction completes.
func (s *Session) Open(path string) error {
	return s.engine.Extract(path)
}

// TogglePlayback plays when paused and pauses when playing.
func (s *Session) TogglePlayback() error {
	return s.engine.Play(!s.engine.IsPlaying())
}

// Stop stops playback and rewinds.
func (s *Session) Stop() error {
	return s.engine.Stop()
}

// Resize records the surface size. With Options.Points == 0 the trace is
// rebuilt with one point per pixel column.
func (s *Session) Resize(width, height int) {
	if width <= 0 || width == s.width {
		return
	}
	s.width = width
	s.line.Resize(float32(width))
	if s.loaded && s.opts.Points == 0 {
		s.trace()
	}
}

// Points returns the point count the next trace will use.
func (s *Session) Points() int {
	if s.opts.Points > 0 {
		return s.opts.Points
	}
	return s.width
}

// Frame delivers pending engine events and draws the trace. It returns the
// first trace failure, after which the session only keeps draining events.
func (s *Session) Frame() error {
	s.loop.Drain()
	if s.err != nil {
		return s.err
	}
	s.line.Draw()
	return nil
}

// Status returns the text for the last engine event.
func (s *Session) Status() string { return s.status }

// Playing reports the last playback state received from the engine.
func (s *Session) Playing() bool { return s.playing }

// Close unsubscribes from the bridge and releases the trace line.
func (s *Session) Close() {
	s.bridge.RemoveExtractionObserver(s)
	s.bridge.RemovePlaybackObserver(s)
	s.line.Close()
}

func (s *Session) OnExtractionStarted() {
	s.status = StatusExtractionStarted
	log.Infof("Session: %s", s.status)
}

func (s *Session) OnExtractionCompleted() {
	s.status = StatusExtractionCompleted
	log.Infof("Session: %s", s.status)

	samples, err := s.engine.ExtractedSamples()
	if err != nil {
		s.fail(fmt.Errorf("fetch samples: %w", err))
		return
	}

	s.samples = samples
	s.loaded = true
	s.trace()
}

func (s *Session) OnExtractionFailed(err error) {
	s.status = StatusExtractionFailed
	log.Warnf("Session: %s: %v", s.status, err)
}

func (s *Session) OnPlayingStatusChanged(playing bool) {
	s.playing = playing
	if playing {
		s.status = StatusPlaying
	} else {
		s.status = StatusPaused
	}
}

func (s *Session) OnEndOfTrack() {
	s.playing = false
	s.status = StatusTrackFinished
}

func (s *Session) OnTrackStopped() {
	s.playing = false
	s.status = StatusTrackStopped
}

func (s *Session) trace() {
	points := s.Points()
	if points <= 0 {
		// No surface yet; Resize will trace.
		return
	}
	window := TraceWindow(s.samples, s.opts.WindowDivisor, s.line.MinSamples(points))
	if err := s.line.DrawData(window, points); err != nil {
		s.fail(fmt.Errorf("trace %d samples into %d points: %w", len(window), points, err))
	}
}

func (s *Session) fail(err error) {
	log.Errorf("Session: %v", err)
	if s.err == nil {
		s.err = err
	}
}
