package timer

import (
	"context"
	"sync"
	"time"
)

// Display re-renders the elapsed time of a running repair once per interval.
// It stops on Stop, on context cancellation, or when SetEnd supplies an end
// timestamp (which is rendered one final time).
type Display struct {
	render   func(string)
	now      func() time.Time
	interval time.Duration

	mu     sync.Mutex
	start  time.Time
	end    time.Time
	cancel context.CancelFunc
	done   chan struct{}
	ended  chan time.Time
}

type Option func(*Display)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Display) { d.now = now }
}

func WithInterval(iv time.Duration) Option {
	return func(d *Display) {
		if iv > 0 {
			d.interval = iv
		}
	}
}

func NewDisplay(start, end time.Time, render func(string), opts ...Option) *Display {
	d := &Display{
		render:   render,
		now:      time.Now,
		interval: time.Second,
		start:    start,
		end:      end,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start renders once and, if the repair is still running, schedules the
// recurring render. Calling Start on an active display is a no-op.
func (d *Display) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}
	d.render(Format(Elapsed(d.start, d.end, d.now())))
	if d.start.IsZero() || !d.end.IsZero() {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.ended = make(chan time.Time, 1)
	go d.loop(ctx, d.start, d.done, d.ended)
}

func (d *Display) loop(ctx context.Context, start time.Time, done chan struct{}, ended <-chan time.Time) {
	defer close(done)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case end := <-ended:
			d.render(Format(Elapsed(start, end, end)))
			return
		case <-ticker.C:
			d.render(Format(Elapsed(start, time.Time{}, d.now())))
		}
	}
}

// SetEnd fixes the end timestamp. A running ticker renders the final value
// and exits.
func (d *Display) SetEnd(end time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if end.IsZero() || !d.end.IsZero() {
		return
	}
	d.end = end
	if d.cancel == nil {
		return
	}
	select {
	case d.ended <- end:
	default:
	}
}

// Stop cancels the ticker and waits for it to exit. It is safe to call more
// than once and on a display that never started.
func (d *Display) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done is closed when the ticker goroutine has exited. It is nil when no
// ticker was scheduled.
func (d *Display) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

// Value is the current rendering without waiting for the next tick.
func (d *Display) Value() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Format(Elapsed(d.start, d.end, d.now()))
}
