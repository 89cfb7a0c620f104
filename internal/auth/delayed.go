package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrCancelled is returned by Wait when the delayed result was cancelled
// before it resolved.
var ErrCancelled = errors.New("delayed result cancelled")

// Delayed is a value that becomes available once a timer fires. It can be
// cancelled before then.
type Delayed[T any] struct {
	value  T
	err    error
	timer  clockwork.Timer
	done   chan struct{}
	cancel chan struct{}
	once   sync.Once
}

// After returns a Delayed that resolves to v once d has elapsed on clk.
func After[T any](clk clockwork.Clock, d time.Duration, v T) *Delayed[T] {
	dl := &Delayed[T]{
		value:  v,
		timer:  clk.NewTimer(d),
		done:   make(chan struct{}),
		cancel: make(chan struct{}),
	}
	go dl.run()
	return dl
}

func (d *Delayed[T]) run() {
	defer close(d.done)
	select {
	case <-d.timer.Chan():
	case <-d.cancel:
		d.timer.Stop()
		d.err = ErrCancelled
	}
}

// Done is closed once the result resolved or was cancelled.
func (d *Delayed[T]) Done() <-chan struct{} { return d.done }

// Wait blocks until the result resolves, the Delayed is cancelled or ctx
// ends.
func (d *Delayed[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		if d.err != nil {
			var zero T
			return zero, d.err
		}
		return d.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Cancel stops the timer. It has no effect once the result resolved.
func (d *Delayed[T]) Cancel() {
	d.once.Do(func() { close(d.cancel) })
}
