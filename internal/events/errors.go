// SPDX-License-Identifier: MIT
package events

import "errors"

// ErrObserverInvocation wraps a panic recovered from an observer callback.
var ErrObserverInvocation = errors.New("events: observer callback panicked")
