// SPDX-License-Identifier: MIT
package events

import (
	"fmt"
	"sync"
)

// recorder logs every callback it receives as a string.
type recorder struct {
	name string
	mu   sync.Mutex
	got  []string
	hook func(call string) // Runs inside the callback, after recording.
}

func (r *recorder) record(call string) {
	r.mu.Lock()
	r.got = append(r.got, call)
	r.mu.Unlock()
	if r.hook != nil {
		r.hook(call)
	}
}

func (r *recorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func (r *recorder) OnPlayingStatusChanged(playing bool) {
	r.record(fmt.Sprintf("playing=%t", playing))
}
func (r *recorder) OnEndOfTrack()            { r.record("end") }
func (r *recorder) OnTrackStopped()          { r.record("stopped") }
func (r *recorder) OnExtractionStarted()     { r.record("started") }
func (r *recorder) OnExtractionCompleted()   { r.record("completed") }

// failureRecorder additionally implements ExtractionFailureObserver.
type failureRecorder struct {
	recorder
}

func (f *failureRecorder) OnExtractionFailed(err error) { f.record("failed: " + err.Error()) }

// panicker panics on every callback.
type panicker struct{}

func (panicker) OnExtractionStarted()   { panic("boom") }
func (panicker) OnExtractionCompleted() { panic("boom") }

// sliceObserver is not comparable and cannot be registered.
type sliceObserver []int

func (sliceObserver) OnExtractionStarted()   {}
func (sliceObserver) OnExtractionCompleted() {}
