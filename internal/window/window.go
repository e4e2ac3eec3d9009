package window

import (
	"context"

	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/softwarelanguageslab/harpy-go/internal/component"
)

// paneKey identifies one partition's state within one pane: a value
// belongs to paneKey{p, k} when the assigner places it in pane p and
// hooks.Key returns k for it. k must be comparable, since paneKey is used
// as a Go map key.
type paneKey struct {
	pane Pane
	key  any
}

// binding records that ref's stream feeds this window's single input
// (spec.md §4.6 "Source binding"). A window has only one input, so unlike
// a reactor's bindings there is no source name to track, but several
// upstreams may still be bound, each contributing its own Emit stream.
type binding struct {
	ref    component.Reference
	stream string
}

// Window is the actor.ActorBehavior driving a window's envelope dispatch.
// Its closed message set is Init, Subscribe, Unsubscribe, ReactTo, and
// Emit; anything else (User, Wakeup) is fatal (spec.md §4.6 "Unknown
// message").
type Window struct {
	base     *component.Base
	assigner Assigner
	hooks    Hooks
	bindings []binding
	ref      WindowRef
	self     *Self

	// state holds each open pane-partition's running accumulator, built up
	// across Emit ingestions via hooks.AddToWindow until it is triggered.
	state map[paneKey]any
}

// Receive implements actor.ActorBehavior[component.Envelope, any].
func (w *Window) Receive(ctx context.Context, env component.Envelope) fn.Result[any] {
	switch env.Kind {
	case component.KindInit:
		if err := w.base.HandleInit(); err != nil {
			return fn.Err[any](err)
		}
		return fn.Ok[any](nil)

	case component.KindSubscribe:
		w.base.HandleSubscribe(env)
		return fn.Ok[any](nil)

	case component.KindUnsubscribe:
		w.base.HandleUnsubscribe(env)
		return fn.Ok[any](nil)

	case component.KindReactTo:
		w.handleReactTo(ctx, env)
		return fn.Ok[any](nil)

	case component.KindEmit:
		w.handleEmitIngestion(ctx, env)
		return fn.Ok[any](nil)

	default:
		// Windows reject anything outside {Init, Subscribe, Unsubscribe,
		// ReactTo, Emit}; in particular KindUser and KindWakeup are fatal
		// (spec.md §4.6 "Unknown message").
		return fn.Err[any](component.ErrUnknownMessage)
	}
}

func (w *Window) handleReactTo(ctx context.Context, env component.Envelope) {
	w.bindings = append(w.bindings, binding{
		ref:    env.ReactTo.Ref,
		stream: env.ReactTo.Stream,
	})

	w.base.SendContext().Subscribe(ctx, env.ReactTo.Ref, env.ReactTo.Stream)
}

// handleEmitIngestion folds an inbound value into the pane(s) it belongs
// to, then triggers every open pane, across all partitions, whose end has
// passed the value's timestamp (spec.md §4.6 "Trigger rule": the latest
// inbound timestamp stands in for a watermark). A value is only ingested
// once, even if several bindings share its (ref, stream) pair.
func (w *Window) handleEmitIngestion(ctx context.Context, env component.Envelope) {
	bound := false
	for _, b := range w.bindings {
		if b.ref == env.From && b.stream == env.Emit.Stream {
			bound = true
			break
		}
	}
	if !bound {
		return
	}

	value := env.Emit.Value
	ts := w.hooks.Timestamp(value)
	key := w.hooks.Key(value)

	for _, pane := range w.assigner.WindowsFor(ts, value) {
		pk := paneKey{pane: pane, key: key}
		w.state[pk] = w.hooks.AddToWindow(value, w.state[pk])
	}

	w.triggerClosed(ctx, ts)
}

// triggerClosed fires WindowComplete for, and removes, every pane whose
// End has passed ts, regardless of which partition key it belongs to.
func (w *Window) triggerClosed(ctx context.Context, ts float64) {
	for pk, acc := range w.state {
		if ts > pk.pane.End {
			delete(w.state, pk)
			log.DebugS(ctx, "pane triggered",
				"pane_start", pk.pane.Start, "pane_end", pk.pane.End,
				"key", pk.key)
			w.hooks.WindowComplete(ctx, w.self, pk.pane, pk.key, acc)
		}
	}
}
