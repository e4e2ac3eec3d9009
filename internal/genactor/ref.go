// Package genactor implements the general-purpose actor variant of
// spec.md §4.4: user-defined Receive/InitActor hooks, monitor/unmonitor of
// another component's stream, self-scheduled wakeups, and the Loop sugar
// built on top of them.
package genactor

import (
	"github.com/softwarelanguageslab/harpy-go/internal/component"
)

// ActorRef is a component.Reference to a general actor. It embeds
// component.Handle to obtain ID, ComponentKind, and the sealed tell method,
// the same pattern reactor.ReactorRef and window.WindowRef use.
type ActorRef struct {
	component.Handle
}

// Spawn starts a new general actor running hooks and returns its ActorRef.
// args and kwargs are delivered via the actor's single Init message before
// any other message is processed (spec.md §4.1 "spawn").
func Spawn(
	sys *component.System, name string, hooks Hooks,
	args []any, kwargs map[string]any,
) ActorRef {

	a := &Actor{
		base:  component.NewBase(),
		hooks: hooks,
	}

	var ref ActorRef
	component.Spawn(sys.Actors(), component.KindActorComponent, name, a, args, kwargs,
		func(h component.Handle) {
			ref = ActorRef{Handle: h}
			a.base.SetSelf(ref)
			a.self = &Self{base: a.base, actor: a}
			a.ref = ref
		},
	)
	sys.NoteSpawn()

	return ref
}
