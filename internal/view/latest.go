package view

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for a call that a newer call replaced before it
// finished. Its result must not be shown.
var ErrSuperseded = errors.New("superseded by a newer request")

// Latest runs calls so that only the most recent one may deliver a result.
// Starting a call cancels the context of the call in flight.
type Latest[T any] struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Do runs fn with a context that is cancelled when another Do starts.
// If another Do started before fn returned, the result is discarded and
// ErrSuperseded is returned.
func (l *Latest[T]) Do(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	result, err := fn(runCtx)

	l.mu.Lock()
	defer l.mu.Unlock()
	cancel()
	if seq != l.seq {
		var zero T
		return zero, ErrSuperseded
	}
	l.cancel = nil
	return result, err
}

// Cancel aborts the call in flight, if any. Its result is discarded.
func (l *Latest[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
}
