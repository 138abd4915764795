// SPDX-License-Identifier: MIT
/*
Package engine decodes audio files and plays them through PortAudio.

Every state change is reported through a Publisher as an events.Event:

  - Extract publishes ExtractionStarted, then ExtractionCompleted or
    ExtractionFailed, from its own goroutine.
  - Play, Stop and the end of the track publish PlaybackStateChanged,
    TrackStopped and TrackEnded.

Thread Safety:
  - The PortAudio callback only touches atomics and the immutable Track.
  - Stream control is serialized by a mutex; publishing never blocks because
    the Publisher only enqueues.
*/
package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"soundsystem/internal/events"
	"soundsystem/internal/log"
)

// Publisher receives engine events. *events.Bridge satisfies it.
type Publisher interface {
	Publish(ev events.Event)
}

// Options configures playback.
type Options struct {
	DeviceID        int
	FramesPerBuffer int
	LowLatency      bool
	Open            StreamOpener // Defaults to OpenPortAudioStream.
}

// Engine owns the decoded track and the output stream.
type Engine struct {
	opts Options
	pub  Publisher

	mu         sync.Mutex // Guards stream, mono and extracting.
	stream     Stream
	mono       []int16
	extracting bool

	track    atomic.Pointer[Track]
	position atomic.Int64 // Next frame to play.
	playing  atomic.Bool
	ended    atomic.Bool // Set once per run by the callback reaching the end.

	wg sync.WaitGroup // Extraction and end-of-track goroutines.
}

// New returns an idle engine publishing to pub.
func New(pub Publisher, opts Options) *Engine {
	if opts.Open == nil {
		opts.Open = OpenPortAudioStream
	}
	if opts.FramesPerBuffer <= 0 {
		opts.FramesPerBuffer = 512
	}
	return &Engine{opts: opts, pub: pub}
}

// Extract starts decoding path on a new goroutine. It fails with
// ErrExtractionRunning while another extraction is in progress.
func (e *Engine) Extract(path string) error {
	e.mu.Lock()
	if e.extracting {
		e.mu.Unlock()
		return ErrExtractionRunning
	}
	e.extracting = true
	e.mu.Unlock()

	e.wg.Add(1)
	go e.extract(path)
	return nil
}

func (e *Engine) extract(path string) {
	defer e.wg.Done()
	e.pub.Publish(events.ExtractionStarted{})

	start := time.Now()
	track, err := Decode(path)

	e.mu.Lock()
	e.extracting = false
	if err == nil {
		e.replaceTrack(track)
	}
	e.mu.Unlock()

	if err != nil {
		log.Errorf("Engine: extraction of %s failed: %v", filepath.Base(path), err)
		e.pub.Publish(events.ExtractionFailed{Err: err})
		return
	}

	log.Infof("Engine: extracted %s (%d frames, %d ch, %d Hz) in %v",
		filepath.Base(path), track.Frames(), track.Channels, track.SampleRate, time.Since(start).Round(time.Millisecond))
	e.pub.Publish(events.ExtractionCompleted{})
}

// replaceTrack swaps in a new track. The old stream was opened for the old
// track's layout, so it is closed. Callers hold e.mu.
func (e *Engine) replaceTrack(t *Track) {
	wasPlaying := e.playing.Swap(false)
	if e.stream != nil {
		if wasPlaying {
			if err := e.stream.Stop(); err != nil {
				log.Warnf("Engine: stopping stream: %v", err)
			}
		}
		if err := e.stream.Close(); err != nil {
			log.Warnf("Engine: closing stream: %v", err)
		}
		e.stream = nil
	}

	e.track.Store(t)
	e.mono = t.Mono()
	e.position.Store(0)
	if wasPlaying {
		e.pub.Publish(events.PlaybackStateChanged{Playing: false})
	}
}

// ExtractedSamples returns the mono mix of the last extracted track. The
// slice is shared and must not be modified.
func (e *Engine) ExtractedSamples() ([]int16, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.track.Load() == nil {
		return nil, ErrNotExtracted
	}
	return e.mono, nil
}

// Track returns the last extracted track.
func (e *Engine) Track() (*Track, error) {
	t := e.track.Load()
	if t == nil {
		return nil, ErrNotExtracted
	}
	return t, nil
}

// Play starts (true) or pauses (false) playback. Requests matching the
// current state do nothing.
func (e *Engine) Play(play bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.track.Load()
	if t == nil {
		return ErrNotExtracted
	}

	switch {
	case play && !e.playing.Load():
		if e.stream == nil {
			stream, err := e.opts.Open(StreamConfig{
				DeviceID:        e.opts.DeviceID,
				Channels:        t.Channels,
				SampleRate:      float64(t.SampleRate),
				FramesPerBuffer: e.opts.FramesPerBuffer,
				LowLatency:      e.opts.LowLatency,
			}, e.fill)
			if err != nil {
				return fmt.Errorf("engine: open output stream: %w", err)
			}
			e.stream = stream
		}
		e.ended.Store(false)
		e.playing.Store(true)
		if err := e.stream.Start(); err != nil {
			e.playing.Store(false)
			return fmt.Errorf("engine: start output stream: %w", err)
		}
		e.pub.Publish(events.PlaybackStateChanged{Playing: true})

	case !play && e.playing.Load():
		e.playing.Store(false)
		if err := e.stream.Stop(); err != nil {
			return fmt.Errorf("engine: pause output stream: %w", err)
		}
		e.pub.Publish(events.PlaybackStateChanged{Playing: false})
	}
	return nil
}

// Stop halts playback, rewinds to the start and publishes TrackStopped.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.track.Load() == nil {
		return ErrNotExtracted
	}
	var err error
	if e.playing.Swap(false) {
		err = e.stream.Stop()
	}
	e.position.Store(0)
	e.pub.Publish(events.TrackStopped{})
	return err
}

// IsPlaying reports whether the output stream is running.
func (e *Engine) IsPlaying() bool {
	return e.playing.Load()
}

// Position returns how far playback has progressed.
func (e *Engine) Position() time.Duration {
	t := e.track.Load()
	if t == nil || t.SampleRate == 0 {
		return 0
	}
	return time.Duration(e.position.Load()) * time.Second / time.Duration(t.SampleRate)
}

// fill is the output stream callback. It runs on the audio thread.
func (e *Engine) fill(out []int16) {
	t := e.track.Load()
	if t == nil || !e.playing.Load() {
		clear(out)
		return
	}

	offset := int(e.position.Load()) * t.Channels
	var n int
	if offset < len(t.Samples) {
		n = copy(out, t.Samples[offset:])
	}
	clear(out[n:])
	e.position.Add(int64(n / t.Channels))

	// The stream cannot be stopped from its own callback.
	if n < len(out) && e.ended.CompareAndSwap(false, true) {
		e.wg.Add(1)
		go e.endTrack()
	}
}

func (e *Engine) endTrack() {
	defer e.wg.Done()

	e.mu.Lock()
	if e.playing.Swap(false) && e.stream != nil {
		if err := e.stream.Stop(); err != nil {
			log.Warnf("Engine: stopping stream at end of track: %v", err)
		}
	}
	e.position.Store(0)
	e.mu.Unlock()

	log.Debugf("Engine: end of track")
	e.pub.Publish(events.TrackEnded{})
}

// Close stops playback, releases the output stream and waits for background
// goroutines.
func (e *Engine) Close() error {
	e.mu.Lock()
	var errs []error
	if e.stream != nil {
		if e.playing.Swap(false) {
			errs = append(errs, e.stream.Stop())
		}
		errs = append(errs, e.stream.Close())
		e.stream = nil
	}
	e.mu.Unlock()

	e.wg.Wait()
	return errors.Join(errs...)
}
