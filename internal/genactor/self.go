package genactor

import (
	"context"
	"time"

	"github.com/softwarelanguageslab/harpy-go/internal/component"
)

// Self is the API a general actor's hooks use to act as their own component:
// emit values, send to other components, monitor another component's
// stream, and schedule wakeups. It is supplied by the Actor driving the
// hooks and is only valid for the duration of the hook call that received it
// (spec.md §4.2/§4.4).
type Self struct {
	base  *component.Base
	actor *Actor
}

// Ref returns this actor's own reference, for passing to other components
// (e.g. so they can monitor it back).
func (s *Self) Ref() component.Reference { return s.actor.ref }

// Emit sends value on stream to every current subscriber of this actor's
// stream (spec.md §4.3 "Emit").
func (s *Self) Emit(ctx context.Context, value any, stream string) {
	s.base.Emit(ctx, value, stream)
}

// Send delivers an opaque, user-defined message to to (spec.md §4.1,
// KindUser).
func (s *Self) Send(ctx context.Context, to component.Reference, msg any) {
	s.base.SendContext().Send(ctx, to, msg)
}

// Monitor subscribes to ref's stream and arranges for callback to run
// whenever a value arrives on it (spec.md §4.4 "monitor").
func (s *Self) Monitor(ctx context.Context, ref component.Reference, stream string, callback Callback) {
	s.actor.monitor(ctx, ref, stream, callback)
}

// Unmonitor removes the first monitor registered against (ref, stream) and
// unsubscribes from it (spec.md §4.4 "unmonitor").
func (s *Self) Unmonitor(ctx context.Context, ref component.Reference, stream string) {
	s.actor.unmonitor(ctx, ref, stream)
}

// SendSelfAfter schedules a Wakeup carrying payload to be delivered to this
// actor's own Receive hook no sooner than delay from now, and returns the
// generation tag of the scheduled timer (spec.md §4.4 "send_self_after").
// A previously scheduled wakeup cannot be cancelled; callers that reschedule
// can compare the generation on an arriving component.WakeupPayload against
// the value this call returned to discard stale firings.
func (s *Self) SendSelfAfter(delay time.Duration, payload any) uint64 {
	return s.actor.sendSelfAfter(delay, payload)
}

// Subscribers returns a copy of stream's current subscriber list. Exposed
// for tests.
func (s *Self) Subscribers(stream string) []component.Reference {
	return s.base.Subscribers(stream)
}
