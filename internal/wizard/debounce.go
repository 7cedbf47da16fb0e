package wizard

import (
	"sync"
	"time"
)

// Debouncer delivers only the last value pushed within a quiet period.
// Every push takes a ticket; a ticket is superseded once a later push or
// Cancel happens. fn receives the ticket so it can recheck it under its own
// lock.
type Debouncer[T any] struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func(uint64, T)
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a Debouncer that calls fn after delay of quiet.
func NewDebouncer[T any](delay time.Duration, fn func(ticket uint64, v T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Push schedules v, replacing any pending value, and returns its ticket.
func (d *Debouncer[T]) Push(v T) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	ticket := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		if d.Superseded(ticket) {
			return
		}
		d.fn(ticket, v)
	})
	return ticket
}

// Cancel drops any pending value.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Superseded reports whether a later push or a cancel replaced ticket.
func (d *Debouncer[T]) Superseded(ticket uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ticket != d.seq
}
