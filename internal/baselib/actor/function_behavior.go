package actor

import (
	"context"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// FunctionBehavior adapts a plain function into an ActorBehavior. This is
// useful for small, stateless actors (such as the system's dead letter
// office) where defining a dedicated type would be unnecessary ceremony.
type FunctionBehavior[M Message, R any] struct {
	fn func(ctx context.Context, msg M) fn.Result[R]
}

// NewFunctionBehavior wraps the given function as an ActorBehavior.
func NewFunctionBehavior[M Message, R any](
	receive func(ctx context.Context, msg M) fn.Result[R],
) *FunctionBehavior[M, R] {

	return &FunctionBehavior[M, R]{fn: receive}
}

// Receive implements ActorBehavior by delegating to the wrapped function.
func (f *FunctionBehavior[M, R]) Receive(
	ctx context.Context, msg M,
) fn.Result[R] {

	return f.fn(ctx, msg)
}
