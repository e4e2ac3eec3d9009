package actor

import (
	"context"
	"sync"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// promiseImpl is the concrete implementation of Promise[T] and, by
// extension, backs the Future[T] returned to callers of Ask. It is
// completed at most once; the first Complete call wins and wakes every
// goroutine blocked in Await or waiting in OnComplete.
type promiseImpl[T any] struct {
	// mu guards result. done is closed under completeOnce, not under mu.
	mu sync.Mutex

	// done is closed exactly once, when the promise is completed.
	done chan struct{}

	// result holds the completed value. Only valid once done is closed.
	result fn.Result[T]

	// completeOnce ensures Complete only takes effect a single time.
	completeOnce sync.Once
}

// NewPromise creates a new, uncompleted promise. Use Complete to resolve it
// and Future to hand the read side to a consumer.
func NewPromise[T any]() Promise[T] {
	return &promiseImpl[T]{
		done: make(chan struct{}),
	}
}

// Complete attempts to set the result of the future. It returns true if this
// call successfully set the result (i.e., it was the first to complete it),
// and false if the future had already been completed.
func (p *promiseImpl[T]) Complete(result fn.Result[T]) bool {
	completed := false
	p.completeOnce.Do(func() {
		p.mu.Lock()
		p.result = result
		p.mu.Unlock()

		close(p.done)
		completed = true
	})

	return completed
}

// Future returns the Future interface associated with this Promise.
func (p *promiseImpl[T]) Future() Future[T] {
	return p
}

// Await blocks until the result is available or the context is cancelled,
// then returns it.
func (p *promiseImpl[T]) Await(ctx context.Context) fn.Result[T] {
	select {
	case <-p.done:
		p.mu.Lock()
		defer p.mu.Unlock()

		return p.result

	case <-ctx.Done():
		return fn.Err[T](ctx.Err())
	}
}

// ThenApply registers a function to transform the result of a future. The
// original future is not modified; a new instance of the future is returned.
func (p *promiseImpl[T]) ThenApply(
	ctx context.Context, fn_ func(T) T,
) Future[T] {

	derived := NewPromise[T]()

	go func() {
		result := p.Await(ctx)

		val, err := result.Unpack()
		if err != nil {
			derived.Complete(fn.Err[T](err))
			return
		}

		derived.Complete(fn.Ok(fn_(val)))
	}()

	return derived.Future()
}

// OnComplete registers a function to be called when the result of the future
// is ready. If the passed context is cancelled before the future completes,
// the callback function will be invoked with the context's error.
func (p *promiseImpl[T]) OnComplete(ctx context.Context, cb func(fn.Result[T])) {
	go func() {
		cb(p.Await(ctx))
	}()
}
