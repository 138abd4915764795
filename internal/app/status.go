// SPDX-License-Identifier: MIT
package app

// Status texts shown to the user for each engine event.
const (
	StatusIdle                = "Idle"
	StatusExtractionStarted   = "Extraction started"
	StatusExtractionCompleted = "Extraction ended"
	StatusExtractionFailed    = "Extraction failed"
	StatusPlaying             = "Playing"
	StatusPaused              = "Pause"
	StatusTrackFinished       = "Track finished"
	StatusTrackStopped        = "Track stopped"
)
