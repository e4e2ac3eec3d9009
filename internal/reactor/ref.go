// Package reactor implements the reactor component variant of spec.md
// §4.5: a dataflow graph from N named input sources to one or more named
// output streams, built once from user-supplied reactive pipeline code and
// fed by ReactTo-bound upstream streams.
package reactor

import (
	"context"

	"github.com/softwarelanguageslab/harpy-go/internal/component"
	"github.com/softwarelanguageslab/harpy-go/internal/reactor/rx"
)

// ReactorRef is a component.Reference to a reactor. It embeds
// component.Handle for ID, ComponentKind, and the sealed tell method, and
// adds ReactTo for binding one of the reactor's named sources to an
// upstream's stream.
type ReactorRef struct {
	component.Handle
}

// ReactTo asks this reactor to bind its named input source to stream of
// upstream (spec.md §4.5 "Source binding"). source is ignored by windows
// but meaningful here: it selects which of the reactor's declared sources
// receives upstream's values.
func (r ReactorRef) ReactTo(ctx context.Context, upstream component.Reference, source, stream string) {
	component.SystemContext().ReactTo(ctx, r, upstream, source, stream)
}

// Output is what a reactor's BuildDAG hook returns: either a single pipeline
// whose values are emitted on stream "default", or a set of named pipelines
// each emitted on its own stream (spec.md §4.5 "Initialization").
type Output struct {
	streams map[string]rx.Observable[any]
}

// SingleOutput wraps one observable as the reactor's sole, "default",
// output stream.
func SingleOutput(observable rx.Observable[any]) Output {
	return Output{streams: map[string]rx.Observable[any]{"default": observable}}
}

// MultiOutput wraps a set of named observables, each emitted on the stream
// matching its key.
func MultiOutput(streams map[string]rx.Observable[any]) Output {
	return Output{streams: streams}
}

// Hooks is the user-supplied reactor behavior: build a dataflow from the
// reactor's declared sources (spec.md §4.5 "Initialization").
type Hooks interface {
	// BuildDAG wires the reactor's named input sources into a pipeline of
	// reactive operators (rx.Map, rx.Filter, rx.Zip, rx.CombineLatest, ...)
	// and returns the observable(s) whose values should be emitted
	// downstream. args and kwargs are whatever Spawn was called with.
	BuildDAG(sources map[string]*rx.Subject[any], args []any, kwargs map[string]any) Output
}

// Spawn starts a new reactor declaring sourceNames as its named input
// sources, calls hooks.BuildDAG once (during Init) to build its pipeline,
// and returns its ReactorRef.
func Spawn(
	sys *component.System, name string, sourceNames []string, hooks Hooks,
	args []any, kwargs map[string]any,
) ReactorRef {

	re := &Reactor{
		base:    component.NewBase(),
		hooks:   hooks,
		sources: make(map[string]*rx.Subject[any], len(sourceNames)),
	}
	for _, n := range sourceNames {
		re.sources[n] = rx.NewSubject[any]()
	}

	var ref ReactorRef
	component.Spawn(sys.Actors(), component.KindReactorComponent, name, re, args, kwargs,
		func(h component.Handle) {
			ref = ReactorRef{Handle: h}
			re.base.SetSelf(ref)
			re.ref = ref
		},
	)
	sys.NoteSpawn()

	return ref
}
