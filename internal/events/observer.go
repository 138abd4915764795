// SPDX-License-Identifier: MIT
package events

// PlaybackObserver receives playback notifications.
type PlaybackObserver interface {
	OnPlayingStatusChanged(playing bool)
	OnEndOfTrack()
	OnTrackStopped()
}

// ExtractionObserver receives decoding progress notifications.
type ExtractionObserver interface {
	OnExtractionStarted()
	OnExtractionCompleted()
}

// ExtractionFailureObserver is implemented by extraction observers that want to
// hear about failed decodes. Observers without it never see ExtractionFailed.
type ExtractionFailureObserver interface {
	OnExtractionFailed(err error)
}
