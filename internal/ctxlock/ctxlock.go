/*
Package ctxlock provides a read/write mutex whose acquisition can be abandoned
when a context is done.
*/
package ctxlock

import (
	"context"
	"sync"
)

// RWMutex is a sync.RWMutex that is acquired through a context.
// The zero value is an unlocked mutex.
type RWMutex struct {
	lock sync.RWMutex
}

/*
WithLock takes a context and a function, acquires the write lock and runs the
function with it held. If the context is done before the lock is acquired,
the function is not run and the context error is returned.
*/
func (m *RWMutex) WithLock(ctx context.Context, f func(ctx context.Context) error) error {
	return with(ctx, m.lock.Lock, m.lock.Unlock, f)
}

// WithRLock is like WithLock but acquires the read lock.
func (m *RWMutex) WithRLock(ctx context.Context, f func(ctx context.Context) error) error {
	return with(ctx, m.lock.RLock, m.lock.RUnlock, f)
}

func with(ctx context.Context, lock, unlock func(), f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		lock()
		select {
		case <-ctx.Done():
			unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer unlock()
	}
	return f(ctx)
}
