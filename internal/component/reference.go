package component

import (
	"context"

	"github.com/google/uuid"
	"github.com/softwarelanguageslab/harpy-go/internal/baselib/actor"
)

// Kind identifies which of the three component variants a Reference points
// to. The spec models Reference as a sum type (Actor | Reactor | Window)
// differing only in which outbound operations are legal; Kind is the tag
// that would back such a sum type, while the legal operations themselves are
// enforced statically by the concrete wrapper types defined in the
// genactor, reactor, and window packages (see DESIGN.md "Reference
// variants").
type Kind int

const (
	// KindActorComponent identifies a general-purpose actor.
	KindActorComponent Kind = iota

	// KindReactorComponent identifies a reactor.
	KindReactorComponent

	// KindWindowComponent identifies a window.
	KindWindowComponent
)

// String renders the component kind for logging.
func (k Kind) String() string {
	switch k {
	case KindActorComponent:
		return "actor"
	case KindReactorComponent:
		return "reactor"
	case KindWindowComponent:
		return "window"
	default:
		return "unknown"
	}
}

// Reference is an opaque, copyable, equality-comparable identifier of a
// spawned component (spec.md §3 "Reference"). The interface is sealed by the
// unexported tell method: only types embedding Handle (or defined in this
// package) can satisfy it, the same way actor.Message is sealed by
// actor.BaseMessage's unexported messageMarker method.
//
// A Reference is valid from the moment Spawn returns until the host tears
// down; copying a Reference never affects the underlying component's
// lifetime.
type Reference interface {
	// ID returns the unique identifier for the referenced component.
	ID() string

	// ComponentKind reports which of the three component variants this
	// reference points to.
	ComponentKind() Kind

	// tell delivers env to the referenced component's mailbox. It is
	// unexported so that only this package (and types that embed Handle)
	// can originate deliveries, sealing the set of types that can claim
	// to be a valid Reference.
	tell(ctx context.Context, env Envelope)
}

// Handle is the concrete, embeddable implementation backing every
// Reference variant. genactor.ActorRef, reactor.ReactorRef, and
// window.WindowRef each embed a Handle to obtain ID, ComponentKind, and the
// sealed tell method, then add their own kind-specific outbound operations
// (Send, ReactTo, ...).
type Handle struct {
	id   string
	kind Kind
	ref  actor.TellOnlyRef[Envelope]
}

// NewHandle wraps a raw actor reference as a component Handle, minting a
// fresh UUID so that two components are never equal even if their
// user-supplied IDs collide (spec.md §3 invariant: a Reference is an opaque,
// comparable identifier).
func NewHandle(kind Kind, ref actor.TellOnlyRef[Envelope]) Handle {
	return Handle{
		id:   uuid.NewString(),
		kind: kind,
		ref:  ref,
	}
}

// ID returns the unique identifier for this component.
func (h Handle) ID() string { return h.id }

// ComponentKind reports which of the three component variants this handle
// belongs to.
func (h Handle) ComponentKind() Kind { return h.kind }

// tell implements Reference by forwarding to the underlying actor reference.
func (h Handle) tell(ctx context.Context, env Envelope) {
	h.ref.Tell(ctx, env)
}
