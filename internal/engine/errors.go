// SPDX-License-Identifier: MIT
package engine

import "errors"

var (
	ErrNotExtracted      = errors.New("engine: no extracted track")
	ErrUnsupportedFormat = errors.New("engine: unsupported audio format")
	ErrExtractionRunning = errors.New("engine: extraction already running")
	ErrInvalidDevice     = errors.New("engine: invalid output device")
)
