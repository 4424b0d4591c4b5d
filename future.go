// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

// Future is the pending result of a non-blocking [*Client] call.
//
// The zero value is not usable; futures are returned by the Async methods.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// resolvedFuture returns a [*Future] that is already complete.
func resolvedFuture[T any](value T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: value, err: err}
	close(f.done)
	return f
}

// startFuture runs fn in a background goroutine.
func startFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn()
	}()
	return f
}

// Done returns a channel closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the result is available and returns it.
//
// Wait may be called any number of times from any goroutine.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.value, f.err
}
