package rx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubjectFanOut(t *testing.T) {
	t.Parallel()

	s := NewSubject[int]()

	var a, b []int
	s.Subscribe(func(v int) { a = append(a, v) })
	s.Subscribe(func(v int) { b = append(b, v) })

	s.Next(1)
	s.Next(2)

	require.Equal(t, []int{1, 2}, a)
	require.Equal(t, []int{1, 2}, b)
}

func TestSubjectUnsubscribe(t *testing.T) {
	t.Parallel()

	s := NewSubject[int]()

	var got []int
	unsubscribe := s.Subscribe(func(v int) { got = append(got, v) })

	s.Next(1)
	unsubscribe()
	s.Next(2)

	require.Equal(t, []int{1}, got)
}

func TestMap(t *testing.T) {
	t.Parallel()

	src := NewSubject[int]()
	doubled := Map(src, func(v int) int { return v * 2 })

	var got []int
	doubled.Subscribe(func(v int) { got = append(got, v) })

	src.Next(1)
	src.Next(2)
	src.Next(3)

	require.Equal(t, []int{2, 4, 6}, got)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	src := NewSubject[int]()
	evens := Filter(src, func(v int) bool { return v%2 == 0 })

	var got []int
	evens.Subscribe(func(v int) { got = append(got, v) })

	for _, v := range []int{1, 2, 3, 4, 5, 6} {
		src.Next(v)
	}

	require.Equal(t, []int{2, 4, 6}, got)
}

func TestCombineLatest(t *testing.T) {
	t.Parallel()

	a := NewSubject[int]()
	b := NewSubject[string]()
	combined := CombineLatest[int, string](a, b)

	var got []Pair[int, string]
	combined.Subscribe(func(p Pair[int, string]) { got = append(got, p) })

	a.Next(1)
	require.Empty(t, got, "no pair until both sides have produced a value")

	b.Next("x")
	require.Equal(t, []Pair[int, string]{{First: 1, Second: "x"}}, got)

	a.Next(2)
	require.Equal(t, []Pair[int, string]{
		{First: 1, Second: "x"},
		{First: 2, Second: "x"},
	}, got)
}

func TestZip(t *testing.T) {
	t.Parallel()

	a := NewSubject[int]()
	b := NewSubject[string]()
	zipped := Zip[int, string](a, b)

	var got []Pair[int, string]
	zipped.Subscribe(func(p Pair[int, string]) { got = append(got, p) })

	a.Next(1)
	a.Next(2)
	require.Empty(t, got, "zip buffers the faster side until its pair arrives")

	b.Next("x")
	require.Equal(t, []Pair[int, string]{{First: 1, Second: "x"}}, got)

	b.Next("y")
	require.Equal(t, []Pair[int, string]{
		{First: 1, Second: "x"},
		{First: 2, Second: "y"},
	}, got)
}
