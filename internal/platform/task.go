// Package platform wraps the host capabilities the generator exports to:
// the system clipboard and a share mechanism. Both are slow, may be missing,
// and run as Tasks so callers can await them or walk away.
package platform

import (
	"context"
	"errors"
)

var (
	// ErrUnsupported is returned when the host offers no implementation.
	ErrUnsupported = errors.New("platform capability not available")

	// ErrAborted is returned when the user dismissed the operation.
	ErrAborted = errors.New("platform operation aborted by user")
)

// Task is the eventual result of an asynchronous operation.
// A Task resolves exactly once; its result can be read any number of times.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs fn on a new goroutine and returns a Task for its result.
func Go[T any](fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.value, t.err = fn()
	}()
	return t
}

// Failed returns a Task already resolved with err.
func Failed[T any](err error) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

// Then returns a Task resolved by fn once t resolves. The continuation runs
// whether or not anybody waits on either task.
func Then[T, U any](t *Task[T], fn func(T, error) (U, error)) *Task[U] {
	return Go(func() (U, error) {
		<-t.done
		return fn(t.value, t.err)
	})
}

// Done is closed when the task resolves.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task resolves or ctx ends. When ctx ends first the
// task keeps running and ctx.Err() is returned.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
