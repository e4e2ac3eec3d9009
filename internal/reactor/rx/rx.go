// Package rx implements a minimal multicast push-reactive kit: Subject as
// the source endpoint, Observable as the read side, and the handful of
// combinators a dataflow pipeline (map, filter, zip, combine_latest) needs
// (spec.md §9 "Subject / reactive library"). It is grounded on the same
// multicast-Subject-over-observer-map shape as
// _examples/other_examples' reactive Observable/Subject pair, generalized
// with Go generics and trimmed to what internal/reactor's pipelines drive.
//
// Every Subject here is fed by exactly one component's executor goroutine
// (the reactor processing an Emit message) and observed by callbacks the
// same goroutine installed, so none of these types take a lock: a pipeline
// is only ever touched sequentially, by the reactor that owns it.
package rx

// Observer receives values pushed through a Subject.
type Observer[T any] func(value T)

// Observable is the read side of a push stream: something you can
// Subscribe an Observer to. Subject implements Observable directly;
// operators (Map, Filter, ...) return a Subject of their own so pipelines
// compose by chaining calls.
type Observable[T any] interface {
	Subscribe(observer Observer[T]) (unsubscribe func())
}

// Subject is a multicast push sink: values pushed with Next fan out to
// every currently subscribed Observer, in subscription order.
type Subject[T any] struct {
	observers []*subscription[T]
	nextID    int
}

type subscription[T any] struct {
	id       int
	observer Observer[T]
}

// NewSubject creates an empty Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers observer and returns a function that removes it.
func (s *Subject[T]) Subscribe(observer Observer[T]) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, &subscription[T]{id: id, observer: observer})

	return func() {
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Next pushes value to every observer currently subscribed, iterating over a
// snapshot so an observer that subscribes or unsubscribes during Next does
// not perturb the delivery in progress.
func (s *Subject[T]) Next(value T) {
	snapshot := make([]*subscription[T], len(s.observers))
	copy(snapshot, s.observers)

	for _, sub := range snapshot {
		sub.observer(value)
	}
}

// ObserverCount reports how many observers are currently subscribed.
func (s *Subject[T]) ObserverCount() int {
	return len(s.observers)
}

// Map returns an Observable that applies f to every value upstream produces.
func Map[T, U any](upstream Observable[T], f func(T) U) *Subject[U] {
	out := NewSubject[U]()
	upstream.Subscribe(func(value T) {
		out.Next(f(value))
	})

	return out
}

// Filter returns an Observable that forwards only the values upstream
// produces for which pred returns true.
func Filter[T any](upstream Observable[T], pred func(T) bool) *Subject[T] {
	out := NewSubject[T]()
	upstream.Subscribe(func(value T) {
		if pred(value) {
			out.Next(value)
		}
	})

	return out
}

// Pair is the value CombineLatest and Zip produce: one value from each of
// two upstreams.
type Pair[A, B any] struct {
	First  A
	Second B
}

// CombineLatest returns an Observable that emits a Pair of the most recent
// value from each upstream every time either one produces a new value,
// once both have produced at least one.
func CombineLatest[A, B any](a Observable[A], b Observable[B]) *Subject[Pair[A, B]] {
	out := NewSubject[Pair[A, B]]()

	var latestA A
	var latestB B
	var haveA, haveB bool

	a.Subscribe(func(value A) {
		latestA, haveA = value, true
		if haveB {
			out.Next(Pair[A, B]{First: latestA, Second: latestB})
		}
	})
	b.Subscribe(func(value B) {
		latestB, haveB = value, true
		if haveA {
			out.Next(Pair[A, B]{First: latestA, Second: latestB})
		}
	})

	return out
}

// Zip returns an Observable that pairs up the nth value from a with the nth
// value from b, buffering whichever upstream is ahead.
func Zip[A, B any](a Observable[A], b Observable[B]) *Subject[Pair[A, B]] {
	out := NewSubject[Pair[A, B]]()

	var pendingA []A
	var pendingB []B

	drain := func() {
		for len(pendingA) > 0 && len(pendingB) > 0 {
			out.Next(Pair[A, B]{First: pendingA[0], Second: pendingB[0]})
			pendingA = pendingA[1:]
			pendingB = pendingB[1:]
		}
	}

	a.Subscribe(func(value A) {
		pendingA = append(pendingA, value)
		drain()
	})
	b.Subscribe(func(value B) {
		pendingB = append(pendingB, value)
		drain()
	})

	return out
}
