package actor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// ErrNoActorsAvailable is returned by a RoutingStrategy that is given no
// candidates to choose from.
var ErrNoActorsAvailable = errors.New("no actors available")

// RoutingStrategy picks one actor reference out of a set of candidates
// registered under the same ServiceKey. Implementations must be safe for
// concurrent use, since a Router may be shared across goroutines.
type RoutingStrategy[M Message, R any] interface {
	// Select picks one reference from candidates, or returns an error (such
	// as ErrNoActorsAvailable) if it cannot pick one.
	Select(candidates []ActorRef[M, R]) (ActorRef[M, R], error)
}

// roundRobinStrategy selects candidates in rotating order, distributing load
// evenly across every actor registered for a service key.
type roundRobinStrategy[M Message, R any] struct {
	next atomic.Uint64
}

// NewRoundRobinStrategy creates a RoutingStrategy that cycles through
// candidates in order, wrapping back to the start after the last one.
func NewRoundRobinStrategy[M Message, R any]() RoutingStrategy[M, R] {
	return &roundRobinStrategy[M, R]{}
}

// Select implements RoutingStrategy.
func (s *roundRobinStrategy[M, R]) Select(
	candidates []ActorRef[M, R],
) (ActorRef[M, R], error) {

	if len(candidates) == 0 {
		return nil, ErrNoActorsAvailable
	}

	idx := s.next.Add(1) - 1

	return candidates[idx%uint64(len(candidates))], nil
}

// router is a virtual ActorRef that looks up every actor registered under a
// ServiceKey at send time and forwards the message to one of them, chosen by
// the configured RoutingStrategy. This gives callers location transparency:
// they interact with the service as a single reference even though it may be
// backed by zero, one, or many concrete actors, and membership may change
// between sends.
type router[M Message, R any] struct {
	receptionist *Receptionist
	key          ServiceKey[M, R]
	strategy     RoutingStrategy[M, R]
	dlo          ActorRef[Message, any]
}

// NewRouter creates a Router-backed ActorRef for the given service key. Every
// Tell/Ask re-resolves the candidate set from the receptionist, so actors
// that register or unregister after the router is created are picked up
// automatically.
func NewRouter[M Message, R any](
	receptionist *Receptionist, key ServiceKey[M, R],
	strategy RoutingStrategy[M, R], dlo ActorRef[Message, any],
) ActorRef[M, R] {

	return &router[M, R]{
		receptionist: receptionist,
		key:          key,
		strategy:     strategy,
		dlo:          dlo,
	}
}

// ID returns a descriptive identifier for this router, incorporating the
// underlying service key's name.
func (r *router[M, R]) ID() string {
	return fmt.Sprintf("router(%s)", r.key.name)
}

// pick resolves the current candidate set and applies the routing strategy.
// It reports false if no actor is currently registered for the service key,
// or if the strategy returns an error.
func (r *router[M, R]) pick() (ActorRef[M, R], bool) {
	candidates := FindInReceptionist(r.receptionist, r.key)
	if len(candidates) == 0 {
		return nil, false
	}

	target, err := r.strategy.Select(candidates)
	if err != nil {
		return nil, false
	}

	return target, true
}

// Tell routes the message to one actor registered under the service key. If
// no actor is currently registered, the message is routed to the dead letter
// office instead of being silently dropped.
func (r *router[M, R]) Tell(ctx context.Context, msg M) {
	target, ok := r.pick()
	if !ok {
		log.DebugS(ctx, "Router has no candidates, routing to DLO",
			"service_key", r.key.name,
			"msg_type", msg.MessageType())

		if r.dlo != nil {
			r.dlo.Tell(ctx, msg)
		}

		return
	}

	target.Tell(ctx, msg)
}

// Ask routes the message to one actor registered under the service key and
// returns its Future. If no actor is currently registered, the returned
// Future completes immediately with ErrActorTerminated.
func (r *router[M, R]) Ask(ctx context.Context, msg M) Future[R] {
	target, ok := r.pick()
	if !ok {
		promise := NewPromise[R]()
		promise.Complete(fn.Err[R](ErrActorTerminated))

		return promise.Future()
	}

	return target.Ask(ctx, msg)
}
