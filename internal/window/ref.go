package window

import (
	"context"

	"github.com/softwarelanguageslab/harpy-go/internal/component"
)

// WindowRef is a component.Reference to a window. It embeds
// component.Handle for ID, ComponentKind, and the sealed tell method, and
// adds ReactTo for binding the window's single implicit source to an
// upstream's stream.
type WindowRef struct {
	component.Handle
}

// ReactTo asks this window to bind its (single, unnamed) input to stream
// of upstream (spec.md §4.6 "Source binding"). Unlike a reactor, a window
// has exactly one input, so there is no source name to pick.
func (r WindowRef) ReactTo(ctx context.Context, upstream component.Reference, stream string) {
	component.SystemContext().ReactTo(ctx, r, upstream, "", stream)
}

// Self is the API a window's hooks use to act as their own component:
// chiefly Emit, for WindowComplete to publish a pane's final accumulator.
type Self struct {
	base *component.Base
	ref  WindowRef
}

// Emit sends value on stream to every current subscriber (spec.md §4.3
// "Emit"). WindowComplete typically calls this to publish a completed
// pane's aggregate.
func (s *Self) Emit(ctx context.Context, value any, stream string) {
	s.base.Emit(ctx, value, stream)
}

// Ref returns this window's own reference.
func (s *Self) Ref() component.Reference { return s.ref }

// Hooks is the user-supplied window behavior (spec.md §4.6).
type Hooks interface {
	// Timestamp extracts the event time of value.
	Timestamp(value any) float64

	// Key extracts the partitioning key of value; panes are tracked per
	// (pane, key). The default, via BaseHooks, is a single nil key for
	// every value (no partitioning). Key must return a comparable value.
	Key(value any) any

	// AddToWindow folds value into prev, the pane's current accumulator
	// (nil if this is the pane's first value), and returns the new
	// accumulator.
	AddToWindow(value any, prev any) any

	// WindowComplete is called exactly once when a pane closes (spec.md
	// §4.6 "Trigger rule"), with that pane's final accumulator. It
	// typically calls self.Emit to publish the aggregate.
	WindowComplete(ctx context.Context, self *Self, pane Pane, key any, accumulator any)
}

// BaseHooks is embeddable by Hooks implementations that don't need a
// custom Key, supplying the spec's default of a single nil key.
type BaseHooks struct{}

// Key returns nil, the default single-partition key.
func (BaseHooks) Key(any) any { return nil }

// Spawn starts a new window using assigner to bucket inputs and hooks to
// fold and publish them, and returns its WindowRef.
func Spawn(
	sys *component.System, name string, assigner Assigner, hooks Hooks,
	args []any, kwargs map[string]any,
) WindowRef {

	w := &Window{
		base:     component.NewBase(),
		assigner: assigner,
		hooks:    hooks,
		state:    make(map[paneKey]any),
	}

	var ref WindowRef
	component.Spawn(sys.Actors(), component.KindWindowComponent, name, w, args, kwargs,
		func(h component.Handle) {
			ref = WindowRef{Handle: h}
			w.base.SetSelf(ref)
			w.ref = ref
			w.self = &Self{base: w.base, ref: ref}
		},
	)
	sys.NoteSpawn()

	return ref
}
