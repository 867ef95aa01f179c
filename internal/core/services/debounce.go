package services

import (
	"sync"
	"time"
)

// Debouncer publishes the most recent value passed to Set once no further
// Set has happened for the configured delay.
//
// A Set during the delay window restarts the timer and drops the pending
// value. Emissions are delivered on C; if the consumer has not read the
// previous emission it is replaced, so at most one value is buffered.
// Stop cancels any pending emission and closes C.
type Debouncer[T any] struct {
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	out    chan T
	closed bool
}

// NewDebouncer creates a debouncer with the given quiet period.
// A zero or negative delay still emits asynchronously from a timer goroutine.
func NewDebouncer[T any](delay time.Duration) *Debouncer[T] {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{
		delay: delay,
		out:   make(chan T, 1),
	}
}

// Set records a new source value and restarts the quiet period.
// Calls after Stop are ignored.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.emit(seq, v)
	})
}

// emit delivers v if no newer Set or Stop happened since it was scheduled.
func (d *Debouncer[T]) emit(seq uint64, v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// A timer that fired while Set or Stop held the lock is outdated.
	if d.closed || seq != d.seq {
		return
	}
	d.timer = nil

	select {
	case d.out <- v:
	default:
		// Replace the unread emission with the newer value.
		select {
		case <-d.out:
		default:
		}
		d.out <- v
	}
}

// C returns the channel emissions are delivered on.
// It is closed by Stop.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Pending returns true if a value is waiting for its quiet period to end.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Delay returns the configured quiet period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Stop cancels any pending emission and closes C. It is safe to call
// more than once.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	close(d.out)
}
