package component

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/softwarelanguageslab/harpy-go/internal/baselib/actor"
)

// Spawn allocates a mailbox, starts an executor for behavior, lets prepare
// wire the new component's Handle back into behavior, enqueues the single
// Init message, and returns the Handle (spec.md §4.1 "spawn"). name is a
// human-readable label used for logging and the actor system's internal
// bookkeeping; Spawn always suffixes it with a fresh UUID so that callers
// never need to worry about name collisions across components.
//
// prepare runs on the spawning goroutine, after registration but strictly
// before Init is enqueued. Every concrete component (genactor.Actor,
// reactor.Reactor, window.Window) needs its own freshly minted Handle before
// it can process any message, including Init, so that Base.Self and
// Base.SendContext are valid from the very first Receive call; prepare is
// where that wiring happens. Because Init is not sent until prepare returns,
// and a mailbox send happens-before the corresponding receive completes,
// the new component's executor goroutine is guaranteed to observe prepare's
// writes once it dequeues Init, even though RegisterWithSystem already
// started that goroutine running.
func Spawn(
	sys *actor.ActorSystem, kind Kind, name string,
	behavior actor.ActorBehavior[Envelope, any],
	args []any, kwargs map[string]any,
	prepare func(Handle),
) Handle {

	instanceID := fmt.Sprintf("%s-%s", name, uuid.NewString())
	key := actor.NewServiceKey[Envelope, any](instanceID)

	rawRef := actor.RegisterWithSystem(sys, instanceID, key, behavior)
	handle := NewHandle(kind, rawRef)

	if prepare != nil {
		prepare(handle)
	}

	handle.tell(context.Background(), Envelope{
		Kind: KindInit,
		Init: InitPayload{Args: args, Kwargs: kwargs},
	})

	return handle
}
