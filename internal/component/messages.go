// Package component implements the layers shared by every harpy component
// (actor, reactor, window): the opaque Reference/Handle sum type, the
// ambient send Context, the closed internal message set, and the base
// publish/subscribe behavior every component embeds.
//
// This corresponds to layers L0-L2 of the specification: the actor host
// itself lives in internal/baselib/actor, and this package builds the
// component contract (spec.md §3, §4.2, §4.3) on top of it.
package component

import "github.com/softwarelanguageslab/harpy-go/internal/baselib/actor"

// MessageKind identifies which of the closed set of internal message kinds
// an Envelope carries. Only Init, Subscribe, and Unsubscribe are handled
// identically by every component (see Base); Emit, ReactTo, Wakeup, and User
// are dispatched by the concrete component type.
type MessageKind int

const (
	// KindInit carries constructor arguments, sent exactly once by Spawn.
	KindInit MessageKind = iota

	// KindEmit carries a value produced on a named stream of the sender.
	KindEmit

	// KindSubscribe asks the receiver to add the sender to a stream's
	// subscriber list.
	KindSubscribe

	// KindUnsubscribe asks the receiver to remove the sender from a
	// stream's subscriber list.
	KindUnsubscribe

	// KindReactTo asks a reactor or window to bind one of its named
	// inputs to a stream of another component.
	KindReactTo

	// KindWakeup fires when a timer set by SendSelfAfter elapses.
	KindWakeup

	// KindUser wraps an opaque, user-defined message or value. Reactors
	// and windows reject these fatally; general actors route them to
	// Receive.
	KindUser
)

// String renders the kind for logging and for Envelope.MessageType.
func (k MessageKind) String() string {
	switch k {
	case KindInit:
		return "Init"
	case KindEmit:
		return "Emit"
	case KindSubscribe:
		return "Subscribe"
	case KindUnsubscribe:
		return "Unsubscribe"
	case KindReactTo:
		return "ReactTo"
	case KindWakeup:
		return "Wakeup"
	case KindUser:
		return "User"
	default:
		return "Unknown"
	}
}

// InitPayload carries constructor arguments for a component's single Init
// message.
type InitPayload struct {
	Args   []any
	Kwargs map[string]any
}

// EmitPayload carries a value produced on a named stream.
type EmitPayload struct {
	Value  any
	Stream string
}

// SubscribePayload names the stream a sender wants to subscribe to.
type SubscribePayload struct {
	Stream string
}

// UnsubscribePayload names the stream a sender wants to unsubscribe from.
type UnsubscribePayload struct {
	Stream string
}

// ReactToPayload asks a reactor or window to bind its named input Source
// (ignored by windows) to Stream of Ref.
type ReactToPayload struct {
	Ref    Reference
	Source string
	Stream string
}

// WakeupPayload carries the user-supplied payload of a scheduled wakeup, plus
// the generation counter the caller can use to detect and discard stale
// wakeups after rescheduling (spec.md §5 "users must guard with a generation
// counter").
type WakeupPayload struct {
	Payload    any
	Generation uint64
}

// Envelope is the single concrete message type carried by every component's
// mailbox. Exactly one of the payload fields is meaningful, selected by Kind;
// this mirrors the closed, tagged-union message set of spec.md §3 in a
// single Go struct rather than a closed interface hierarchy, since every
// component's actor.Actor[Envelope, any] instantiation needs one concrete M.
type Envelope struct {
	// BaseMessage promotes the unexported messageMarker method, sealing
	// Envelope against actor.Message.
	actor.BaseMessage

	// Kind selects which payload field of this envelope is meaningful.
	Kind MessageKind

	// From identifies the sender. It is the zero Reference (nil) when the
	// message originated from a SystemContext rather than another
	// component.
	From Reference

	Init        InitPayload
	Emit        EmitPayload
	Subscribe   SubscribePayload
	Unsubscribe UnsubscribePayload
	ReactTo     ReactToPayload
	Wakeup      WakeupPayload
	User        any
}

// MessageType implements actor.Message, used for routing/filtering and for
// structured log lines throughout internal/baselib/actor.
func (e Envelope) MessageType() string {
	return e.Kind.String()
}
