package component

import "context"

// Base implements the publish/subscribe behavior shared by every component
// (spec.md §4.3): per-stream subscriber lists, the init-once rule, and
// Emit's fan-out. Actor, Reactor, and Window each embed a Base and delegate
// their Init/Subscribe/Unsubscribe handling to it before dispatching
// kind-specific messages themselves.
//
// Base's methods are only ever called from the single executor goroutine
// that processes its owning component's mailbox (spec.md §4.1 "Execution
// model"), so no internal locking is required.
type Base struct {
	subscribers map[string][]Reference
	initPending bool
	self        Reference
	ctx         Context
}

// NewBase creates a Base with initPending set, ready to receive its single
// Init message.
func NewBase() *Base {
	return &Base{
		subscribers: make(map[string][]Reference),
		initPending: true,
	}
}

// SetSelf records this component's own reference, deriving the Context used
// to attribute its outbound sends (Emit, and anything the embedding
// component forwards through Base.SendContext).
func (b *Base) SetSelf(self Reference) {
	b.self = self
	b.ctx = ForComponent(self)
}

// Self returns this component's own reference.
func (b *Base) Self() Reference { return b.self }

// SendContext returns the Context scoped to this component, for use by
// embedding components that need to originate Subscribe/ReactTo/Wakeup
// messages of their own (monitor, react_to, send_self_after).
func (b *Base) SendContext() Context { return b.ctx }

// HandleInit enforces the init-once invariant (spec.md §4.3: "A second Init
// to the same component is fatal"). It must be called exactly once per
// component, before any other message is processed; the actor host
// guarantees Init is first in the mailbox.
func (b *Base) HandleInit() error {
	if !b.initPending {
		return ErrInitAlready
	}

	b.initPending = false

	return nil
}

// HandleSubscribe appends env.From to stream's subscriber list (spec.md
// §4.3 "Subscribe").
func (b *Base) HandleSubscribe(env Envelope) {
	stream := env.Subscribe.Stream

	b.subscribers[stream] = append(b.subscribers[stream], env.From)
}

// HandleUnsubscribe removes the first occurrence of env.From from stream's
// subscriber list, silently no-op'ing if absent (spec.md §4.3
// "Unsubscribe").
func (b *Base) HandleUnsubscribe(env Envelope) {
	stream := env.Unsubscribe.Stream
	list := b.subscribers[stream]

	for i, sub := range list {
		if sub == env.From {
			b.subscribers[stream] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Emit sends value on stream to every subscriber currently registered for
// it, in subscription order (spec.md §4.3 "Emit"). The subscriber list is
// snapshotted before fan-out begins, so changes made to it during the fan-out
// (were any possible) would not be observed by this call.
func (b *Base) Emit(ctx context.Context, value any, stream string) {
	subs := b.subscribers[stream]
	if len(subs) == 0 {
		return
	}

	snapshot := make([]Reference, len(subs))
	copy(snapshot, subs)

	for _, sub := range snapshot {
		b.ctx.EmitTo(ctx, sub, value, stream)
	}
}

// Subscribers returns a copy of stream's current subscriber list. Exposed
// for tests that assert on fan-out order and multiplicities.
func (b *Base) Subscribers(stream string) []Reference {
	list := b.subscribers[stream]
	out := make([]Reference, len(list))
	copy(out, list)

	return out
}
