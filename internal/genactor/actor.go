package genactor

import (
	"context"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/softwarelanguageslab/harpy-go/internal/component"
)

// Hooks is the behavior a caller supplies to Spawn. InitActor runs once,
// against the arguments passed to Spawn; Receive runs for everything else
// this actor is told or wakes up for (spec.md §4.4).
type Hooks interface {
	// InitActor runs exactly once, before any other hook, against the
	// args/kwargs Spawn was called with.
	InitActor(ctx context.Context, self *Self, args []any, kwargs map[string]any) error

	// Receive runs for every user-defined Send and every elapsed
	// SendSelfAfter timer. msg is either the raw payload a sender passed to
	// Self.Send, or a component.WakeupPayload for a fired timer; a type
	// switch on msg distinguishes the two.
	Receive(ctx context.Context, self *Self, msg any) error
}

// BaseHooks is embeddable by Hooks implementations that don't need
// constructor arguments, supplying a no-op InitActor.
type BaseHooks struct{}

// InitActor is a no-op. Embed BaseHooks and implement only Receive when a
// Hooks type needs no construction-time setup.
func (BaseHooks) InitActor(context.Context, *Self, []any, map[string]any) error {
	return nil
}

// Callback is invoked when a value arrives on a monitored stream.
type Callback func(ctx context.Context, self *Self, value any)

type monitorTriple struct {
	ref      component.Reference
	stream   string
	callback Callback
}

// Actor is the actor.ActorBehavior that drives a general actor's envelope
// dispatch: Init/Subscribe/Unsubscribe are handled by the embedded
// component.Base, Emit is routed to whichever monitor triple matches its
// (sender, stream) pair, and Wakeup/User both feed the same Receive hook
// (spec.md §4.1 dispatch table).
type Actor struct {
	base       *component.Base
	hooks      Hooks
	self       *Self
	ref        ActorRef
	monitoring []monitorTriple
	generation uint64
}

// Receive implements actor.ActorBehavior[component.Envelope, any].
func (a *Actor) Receive(ctx context.Context, env component.Envelope) fn.Result[any] {
	switch env.Kind {
	case component.KindInit:
		if err := a.base.HandleInit(); err != nil {
			return fn.Err[any](err)
		}
		if err := a.hooks.InitActor(ctx, a.self, env.Init.Args, env.Init.Kwargs); err != nil {
			return fn.Err[any](err)
		}
		return fn.Ok[any](nil)

	case component.KindSubscribe:
		a.base.HandleSubscribe(env)
		return fn.Ok[any](nil)

	case component.KindUnsubscribe:
		a.base.HandleUnsubscribe(env)
		return fn.Ok[any](nil)

	case component.KindEmit:
		a.handleEmit(ctx, env)
		return fn.Ok[any](nil)

	case component.KindWakeup:
		if err := a.hooks.Receive(ctx, a.self, env.Wakeup); err != nil {
			return fn.Err[any](err)
		}
		return fn.Ok[any](nil)

	case component.KindUser:
		if err := a.hooks.Receive(ctx, a.self, env.User); err != nil {
			return fn.Err[any](err)
		}
		return fn.Ok[any](nil)

	case component.KindReactTo:
		// Only reactors and windows bind react_to sources; a well-formed
		// program never targets a general actor with one. Log and drop
		// rather than treat it as fatal, since (unlike reactors/windows)
		// actors don't reject out-of-band messages by contract.
		log.WarnS(ctx, "actor received ReactTo, which it does not implement; dropping",
			"actor_id", a.ref.ID())
		return fn.Ok[any](nil)

	default:
		return fn.Err[any](component.ErrUnknownMessage)
	}
}

func (a *Actor) handleEmit(ctx context.Context, env component.Envelope) {
	for _, m := range a.monitoring {
		if m.ref == env.From && m.stream == env.Emit.Stream {
			m.callback(ctx, a.self, env.Emit.Value)
			return
		}
	}
}

// monitor registers callback against the first matching Emit on ref's
// stream and subscribes to it. Multiple monitors on the same (ref, stream)
// pair may coexist; Emit dispatch always invokes the first one registered
// (spec.md §4.4 "monitor").
func (a *Actor) monitor(ctx context.Context, ref component.Reference, stream string, callback Callback) {
	a.monitoring = append(a.monitoring, monitorTriple{
		ref:      ref,
		stream:   stream,
		callback: callback,
	})
	a.base.SendContext().Subscribe(ctx, ref, stream)
}

// unmonitor removes the first monitor triple matching (ref, stream) and
// unsubscribes from it (spec.md §4.4 "unmonitor"). unmonitor is a no-op,
// aside from still sending Unsubscribe, if no such triple is registered.
func (a *Actor) unmonitor(ctx context.Context, ref component.Reference, stream string) {
	for i, m := range a.monitoring {
		if m.ref == ref && m.stream == stream {
			a.monitoring = append(a.monitoring[:i], a.monitoring[i+1:]...)
			break
		}
	}
	a.base.SendContext().Unsubscribe(ctx, ref, stream)
}

// sendSelfAfter schedules a Wakeup carrying payload, at least delay from
// now, tagged with a freshly incremented generation (spec.md §4.4
// "send_self_after", §5 "generation counter").
func (a *Actor) sendSelfAfter(delay time.Duration, payload any) uint64 {
	a.generation++
	gen := a.generation

	component.ScheduleWakeup(a.ref, delay, payload, gen)

	return gen
}
