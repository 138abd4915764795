// SPDX-License-Identifier: MIT
package engine

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"soundsystem/internal/events"
)

// writeWAV encodes interleaved samples into a PCM WAV file under t.TempDir.
func writeWAV(t *testing.T, name string, data []int, channels, bitDepth int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, 44100, bitDepth, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: 44100},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	return path
}

// eventLog is a Publisher that records events synchronously.
type eventLog struct {
	mu     sync.Mutex
	events []events.Event
}

func (l *eventLog) Publish(ev events.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) all() []events.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]events.Event(nil), l.events...)
}

// fakeStream counts control calls.
type fakeStream struct {
	mu                   sync.Mutex
	starts, stops, close int
	startErr             error
}

func (s *fakeStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts++
	return s.startErr
}

func (s *fakeStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	return nil
}

func (s *fakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.close++
	return nil
}

func (s *fakeStream) counts() (starts, stops, closes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts, s.stops, s.close
}

// fakeOutput hands out one fakeStream and keeps the fill callback.
type fakeOutput struct {
	stream  *fakeStream
	opened  int
	lastCfg StreamConfig
	fill    func(out []int16)
	err     error
}

func (o *fakeOutput) open(cfg StreamConfig, fill func(out []int16)) (Stream, error) {
	if o.err != nil {
		return nil, o.err
	}
	o.opened++
	o.lastCfg = cfg
	o.fill = fill
	if o.stream == nil {
		o.stream = &fakeStream{}
	}
	return o.stream, nil
}
