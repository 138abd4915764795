// SPDX-License-Identifier: MIT
package events

import (
	"context"
	"sync"
)

// Loop is an unbounded FIFO of tasks with a single consumer. Post may be
// called from any goroutine and never blocks on task execution; Run or Drain
// execute the tasks on the calling goroutine. Run and Drain must not be used
// from two goroutines at once.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	spare  []func() // Drained queue kept for reuse.
	wake   chan struct{}
	done   chan struct{}
	closed bool
}

// NewLoop returns a loop whose queue starts with the given capacity.
func NewLoop(capacity int) *Loop {
	if capacity < 0 {
		capacity = 0
	}
	return &Loop{
		queue: make([]func(), 0, capacity),
		spare: make([]func(), 0, capacity),
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Post enqueues task. It returns false once the loop is closed.
func (l *Loop) Post(task func()) bool {
	if task == nil {
		return false
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Drain runs every task queued before the call, in order, and returns how many
// ran. Tasks posted while draining run on the next Drain.
func (l *Loop) Drain() int {
	l.mu.Lock()
	tasks := l.queue
	l.queue = l.spare[:0]
	l.spare = nil
	l.mu.Unlock()

	for i, task := range tasks {
		task()
		tasks[i] = nil
	}

	l.mu.Lock()
	l.spare = tasks[:0]
	l.mu.Unlock()
	return len(tasks)
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Run drains the loop whenever tasks arrive until ctx is cancelled or the loop
// is closed. Tasks still queued at Close are run before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			l.Drain()
			return nil
		case <-l.wake:
		}
	}
}

// Close stops accepting tasks. It is safe to call more than once.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.done)
	}
}
