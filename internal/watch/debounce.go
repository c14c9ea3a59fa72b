package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into one signal on C, sent once
// the interval has passed without a new trigger.
type Debouncer struct {
	interval time.Duration
	fire     chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		fire:     make(chan struct{}, 1),
	}
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case d.fire <- struct{}{}:
		default:
		}
	})
}

// C delivers one value per settled burst. Signals not yet received are
// merged.
func (d *Debouncer) C() <-chan struct{} {
	return d.fire
}

// Stop cancels a pending signal. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
