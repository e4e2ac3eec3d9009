package reactor

import (
	"context"

	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/softwarelanguageslab/harpy-go/internal/component"
	"github.com/softwarelanguageslab/harpy-go/internal/reactor/rx"
)

// binding records that ref's stream feeds source (spec.md §4.5 "Source
// binding"). Multiple bindings may name the same source, multiplexing
// several upstreams' values into one Subject; multiple bindings may also
// share (ref, stream) feeding distinct sources.
type binding struct {
	ref    component.Reference
	stream string
	source string
}

// Reactor is the actor.ActorBehavior driving a reactor's envelope dispatch.
// Its closed message set is Init, Subscribe, Unsubscribe, ReactTo, and
// Emit; anything else (User, Wakeup) is fatal (spec.md §4.5 "Unknown
// message").
type Reactor struct {
	base     *component.Base
	hooks    Hooks
	sources  map[string]*rx.Subject[any]
	bindings []binding
	ref      ReactorRef

	// currentCtx carries the context.Context of the Emit envelope
	// currently being ingested across the synchronous rx.Subject.Next call
	// stack, so the terminal subscription installed by installTerminals
	// can call component.Base.Emit with it. It is only ever set and read
	// from this reactor's own executor goroutine while one Receive call is
	// on the stack, the same scoping the original Python implementation
	// gets from a context-manager stack (harpy._context.ActorContext).
	currentCtx context.Context
}

// Receive implements actor.ActorBehavior[component.Envelope, any].
func (r *Reactor) Receive(ctx context.Context, env component.Envelope) fn.Result[any] {
	switch env.Kind {
	case component.KindInit:
		if err := r.base.HandleInit(); err != nil {
			return fn.Err[any](err)
		}

		output := r.hooks.BuildDAG(r.sources, env.Init.Args, env.Init.Kwargs)
		r.installTerminals(output)

		return fn.Ok[any](nil)

	case component.KindSubscribe:
		r.base.HandleSubscribe(env)
		return fn.Ok[any](nil)

	case component.KindUnsubscribe:
		r.base.HandleUnsubscribe(env)
		return fn.Ok[any](nil)

	case component.KindReactTo:
		r.handleReactTo(ctx, env)
		return fn.Ok[any](nil)

	case component.KindEmit:
		r.currentCtx = ctx
		r.handleEmitIngestion(env)
		r.currentCtx = nil

		return fn.Ok[any](nil)

	default:
		// Reactors reject anything outside {Init, Subscribe, Unsubscribe,
		// ReactTo, Emit}; in particular KindUser and KindWakeup are fatal
		// (spec.md §4.5 "Unknown message").
		return fn.Err[any](component.ErrUnknownMessage)
	}
}

// installTerminals subscribes an emit-forwarding observer to each of the
// reactor's declared output streams. Because Go 1.22+ range loops bind a
// fresh stream variable per iteration, each closure captures the stream
// name it was installed for, not whatever the loop variable holds by the
// time a value arrives (spec.md §4.5 "must capture the correct stream per
// subscription, not the last in a loop").
func (r *Reactor) installTerminals(output Output) {
	for stream, observable := range output.streams {
		stream := stream

		observable.Subscribe(func(value any) {
			r.base.Emit(r.currentCtx, value, stream)
		})
	}
}

func (r *Reactor) handleReactTo(ctx context.Context, env component.Envelope) {
	r.bindings = append(r.bindings, binding{
		ref:    env.ReactTo.Ref,
		stream: env.ReactTo.Stream,
		source: env.ReactTo.Source,
	})

	log.DebugS(ctx, "reactor bound source",
		"source", env.ReactTo.Source, "stream", env.ReactTo.Stream,
		"upstream_id", env.ReactTo.Ref.ID())

	r.base.SendContext().Subscribe(ctx, env.ReactTo.Ref, env.ReactTo.Stream)
}

// handleEmitIngestion pushes an inbound Emit's value into every source it
// is bound to (spec.md §4.5 "Emit ingestion"): a value may feed several
// sources if the user bound more than one source to the same (ref,
// stream) pair.
func (r *Reactor) handleEmitIngestion(env component.Envelope) {
	for _, b := range r.bindings {
		if b.ref == env.From && b.stream == env.Emit.Stream {
			if subject, ok := r.sources[b.source]; ok {
				subject.Next(env.Emit.Value)
			}
		}
	}
}
