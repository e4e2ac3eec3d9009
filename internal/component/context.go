package component

import "context"

// Context identifies "who is sending" for an outbound operation (spec.md
// §4.2). There are two variants:
//
//   - SystemContext(): used by code that is not inside a component
//     (bootstrap, tests); the zero value, since it carries no self
//     reference.
//   - a component context, scoped to exactly one component, used while that
//     component processes one message.
//
// Rather than a mutable, goroutine-local stack that user code consults
// implicitly (as spec.md §4.2 and §9 describe for the Python original),
// each component's Base holds its Context as a plain value, and hooks reach
// it through the Self argument they are passed (genactor.Self,
// window.Self); a reactor's BuildDAG takes no context, since the reactor
// itself emits the pipeline's outputs. Because a component's handler runs
// to completion on exactly one executor goroutine before the next message is
// dequeued (internal/baselib/actor's process loop already guarantees this),
// an explicit argument carries identical information to an ambient stack
// without the leak risk a global stack would need scoped push/pop discipline
// to avoid — see DESIGN.md "Open Question decisions".
type Context struct {
	self Reference
}

// SystemContext returns the context used by code that is not inside any
// component (bootstrap, tests). Sends made through it carry no sender
// identity.
func SystemContext() Context {
	return Context{}
}

// ForComponent returns the context scoped to the component identified by
// self. It is used internally when constructing the Context passed into a
// component's hooks during message processing.
func ForComponent(self Reference) Context {
	return Context{self: self}
}

// IsSystem reports whether this is the system (non-component) context.
func (c Context) IsSystem() bool {
	return c.self == nil
}

// Self returns the reference this context is scoped to, and false if this is
// the system context.
func (c Context) Self() (Reference, bool) {
	return c.self, c.self != nil
}

// Send delivers an opaque, user-defined message to to, tagged with this
// context's sender identity (nil for the system context).
func (c Context) Send(ctx context.Context, to Reference, msg any) {
	to.tell(ctx, Envelope{Kind: KindUser, From: c.self, User: msg})
}

// Subscribe sends a Subscribe message to to on behalf of this context's
// component, asking it to add the sender to stream's subscriber list.
func (c Context) Subscribe(ctx context.Context, to Reference, stream string) {
	to.tell(ctx, Envelope{
		Kind:      KindSubscribe,
		From:      c.self,
		Subscribe: SubscribePayload{Stream: stream},
	})
}

// Unsubscribe sends an Unsubscribe message to to on behalf of this context's
// component.
func (c Context) Unsubscribe(ctx context.Context, to Reference, stream string) {
	to.tell(ctx, Envelope{
		Kind:        KindUnsubscribe,
		From:        c.self,
		Unsubscribe: UnsubscribePayload{Stream: stream},
	})
}

// ReactTo sends a ReactTo message to to (a reactor or window), asking it to
// bind its named input source (ignored by windows) to stream of upstream.
func (c Context) ReactTo(ctx context.Context, to, upstream Reference, source, stream string) {
	to.tell(ctx, Envelope{
		Kind: KindReactTo,
		From: c.self,
		ReactTo: ReactToPayload{
			Ref:    upstream,
			Source: source,
			Stream: stream,
		},
	})
}

// EmitTo sends an Emit message carrying value on stream to a single
// subscriber. Base.Emit calls this once per subscriber in a stream's
// snapshot.
func (c Context) EmitTo(ctx context.Context, to Reference, value any, stream string) {
	to.tell(ctx, Envelope{
		Kind: KindEmit,
		From: c.self,
		Emit: EmitPayload{Value: value, Stream: stream},
	})
}

// Wakeup sends a Wakeup message carrying payload and generation to to,
// tagged with this context's sender identity. ScheduleWakeup does not use
// it: timer delivery builds its envelope directly, with no sender.
func (c Context) Wakeup(ctx context.Context, to Reference, payload any, generation uint64) {
	to.tell(ctx, Envelope{
		Kind:   KindWakeup,
		From:   c.self,
		Wakeup: WakeupPayload{Payload: payload, Generation: generation},
	})
}
