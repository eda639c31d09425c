package load

import (
	"context"
	"errors"
)

// ErrUnmounted is returned when a result arrives after its view ended.
var ErrUnmounted = errors.New("view unmounted")

// Lifetime is the cancellable scope of a mounted view.
type Lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewLifetime starts a lifetime. It is independent of any request context.
func NewLifetime() *Lifetime {
	ctx, cancel := context.WithCancel(context.Background())
	return &Lifetime{ctx: ctx, cancel: cancel}
}

// Bind derives a context that is cancelled when either ctx is done or the
// lifetime ends. The returned stop func must be called to release it.
func (l *Lifetime) Bind(ctx context.Context) (context.Context, context.CancelFunc) {
	bound, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(l.ctx, cancel)
	return bound, func() {
		stop()
		cancel()
	}
}

// End cancels everything bound to the lifetime. Safe to call twice.
func (l *Lifetime) End() {
	l.cancel()
}

// Ended reports whether End was called.
func (l *Lifetime) Ended() bool {
	return l.ctx.Err() != nil
}

// Done is closed when the lifetime ends.
func (l *Lifetime) Done() <-chan struct{} {
	return l.ctx.Done()
}

// Run calls fn under a context bound to the lifetime. If the lifetime ended
// while fn was running, its result is dropped and ErrUnmounted returned.
func Run[T any](ctx context.Context, l *Lifetime, fn func(context.Context) (T, error)) (T, error) {
	bound, stop := l.Bind(ctx)
	defer stop()

	value, err := fn(bound)
	if l.Ended() {
		var zero T
		return zero, ErrUnmounted
	}
	return value, err
}
