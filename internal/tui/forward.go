// SPDX-License-Identifier: MIT
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"soundsystem/internal/events"
)

// eventMsg carries an engine event into the bubbletea update loop.
type eventMsg struct {
	ev events.Event
}

// Forwarder re-posts bridge callbacks as program messages. It is registered as
// both a playback and an extraction observer.
type Forwarder struct {
	send func(tea.Msg)
}

// NewForwarder returns a Forwarder delivering through send, usually
// (*tea.Program).Send.
func NewForwarder(send func(tea.Msg)) *Forwarder {
	return &Forwarder{send: send}
}

func (f *Forwarder) OnExtractionStarted()   { f.send(eventMsg{events.ExtractionStarted{}}) }
func (f *Forwarder) OnExtractionCompleted() { f.send(eventMsg{events.ExtractionCompleted{}}) }
func (f *Forwarder) OnExtractionFailed(err error) {
	f.send(eventMsg{events.ExtractionFailed{Err: err}})
}
func (f *Forwarder) OnPlayingStatusChanged(playing bool) {
	f.send(eventMsg{events.PlaybackStateChanged{Playing: playing}})
}
func (f *Forwarder) OnEndOfTrack()   { f.send(eventMsg{events.TrackEnded{}}) }
func (f *Forwarder) OnTrackStopped() { f.send(eventMsg{events.TrackStopped{}}) }
