package translation

import (
	"context"
	"sync"
	"time"
)

// Result is delivered for the newest surviving debounced request.
type Result struct {
	RequestID uint64
	Text      string
	Target    string
}

// Debouncer serialises interactive translation requests: each Request
// supersedes the previous one, the pipeline fires only after the input
// has been quiet for the configured delay, and a superseded request's
// completion is discarded rather than delivered. Request ids increase
// monotonically so "newest wins" holds even when an older in-flight
// request finishes late.
type Debouncer struct {
	translator *Translator
	delay      time.Duration

	mu     sync.Mutex
	latest uint64
	timer  *time.Timer
}

// NewDebouncer wraps the translator with a debounce window.
func NewDebouncer(translator *Translator, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &Debouncer{translator: translator, delay: delay}
}

// Request schedules a translation of text into target. deliver runs on a
// background goroutine once the debounce elapses, and only if no newer
// request has been issued meanwhile. The returned id identifies this
// request.
func (d *Debouncer) Request(ctx context.Context, text, target string, deliver func(Result)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.latest++
	id := d.latest

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, func() {
		if !d.isLatest(id) {
			return
		}
		translated := d.translator.Translate(ctx, text, target)
		// Re-check after the (possibly slow) pipeline call; a newer
		// request may have been issued while this one was in flight.
		if !d.isLatest(id) {
			return
		}
		deliver(Result{RequestID: id, Text: translated, Target: target})
	})

	return id
}

// Delay returns the configured debounce window.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Flush cancels any pending request without delivering it.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.latest++
}

func (d *Debouncer) isLatest(id uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest == id
}
