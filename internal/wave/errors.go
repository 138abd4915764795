// SPDX-License-Identifier: MIT
package wave

import "errors"

var (
	ErrEmptyInput          = errors.New("wave: empty sample buffer")
	ErrInsufficientSamples = errors.New("wave: fewer samples than requested points")
	ErrInvalidPointCount   = errors.New("wave: point count must be positive")
)
