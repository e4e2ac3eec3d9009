package window

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/softwarelanguageslab/harpy-go/internal/component"
	"github.com/softwarelanguageslab/harpy-go/internal/genactor"
)

// timedValue is the inbound event type used by the scenario tests below:
// a value paired with the event timestamp the window's Hooks extract.
type timedValue struct {
	ts  float64
	val int
}

// emitAllMsg asks the producer actor to emit a fixed sequence of
// timedValues, in order, one per user message received.
type emitAllMsg struct {
	events []timedValue
}

type producerHooks struct {
	genactor.BaseHooks
}

func (producerHooks) Receive(ctx context.Context, self *genactor.Self, msg any) error {
	req, ok := msg.(emitAllMsg)
	if !ok {
		return nil
	}
	for _, e := range req.events {
		self.Emit(ctx, e, "default")
	}
	return nil
}

// completion records one fired pane, as reported to sumHooks.WindowComplete.
type completion struct {
	pane Pane
	key  any
	acc  any
}

// sumHooks implements Hooks for S4/S5: sums timedValue.val into the
// pane's running accumulator and records each completed pane.
type sumHooks struct {
	BaseHooks

	mu        sync.Mutex
	completed []completion
}

func (h *sumHooks) Timestamp(value any) float64 {
	return value.(timedValue).ts
}

func (h *sumHooks) AddToWindow(value any, prev any) any {
	acc := 0
	if prev != nil {
		acc = prev.(int)
	}
	return acc + value.(timedValue).val
}

func (h *sumHooks) WindowComplete(
	ctx context.Context, self *Self, pane Pane, key any, acc any,
) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed = append(h.completed, completion{pane: pane, key: key, acc: acc})
}

func (h *sumHooks) Completed() []completion {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]completion, len(h.completed))
	copy(out, h.completed)
	return out
}

// TestFixedWindowScenario reproduces spec.md S4: inputs (ts=1, 5),
// (ts=3, 7), (ts=12, 1). On the third input, pane [0,10) (accumulator 12)
// triggers; pane [10,20) stays open with accumulator 1.
func TestFixedWindowScenario(t *testing.T) {
	t.Parallel()

	sys := component.NewDefaultSystem()
	defer sys.Shutdown(context.Background())

	hooks := &sumHooks{}
	windowRef := Spawn(sys, "fixed-window", FixedWindow{Length: 10, Offset: 0}, hooks, nil, nil)

	producer := genactor.Spawn(sys, "producer", producerHooks{}, nil, nil)
	windowRef.ReactTo(context.Background(), producer, "default")

	time.Sleep(20 * time.Millisecond)

	component.SystemContext().Send(context.Background(), producer, emitAllMsg{
		events: []timedValue{{ts: 1, val: 5}, {ts: 3, val: 7}, {ts: 12, val: 1}},
	})

	time.Sleep(50 * time.Millisecond)

	completed := hooks.Completed()
	require.Len(t, completed, 1)
	require.Equal(t, Pane{Start: 0, End: 10}, completed[0].pane)
	require.Equal(t, 12, completed[0].acc)
}

// TestSlidingWindowScenario reproduces spec.md S5: a Sliding(frequency=5,
// length=10) window. Input at ts=7 lands in panes [0,10) and [5,15).
// Input at ts=16 triggers completion of both (16 > 10 and 16 > 15).
func TestSlidingWindowScenario(t *testing.T) {
	t.Parallel()

	sys := component.NewDefaultSystem()
	defer sys.Shutdown(context.Background())

	hooks := &sumHooks{}
	assigner := SlidingWindow{Frequency: 5, Length: 10, Offset: 0}
	windowRef := Spawn(sys, "sliding-window", assigner, hooks, nil, nil)

	producer := genactor.Spawn(sys, "producer", producerHooks{}, nil, nil)
	windowRef.ReactTo(context.Background(), producer, "default")

	time.Sleep(20 * time.Millisecond)

	component.SystemContext().Send(context.Background(), producer, emitAllMsg{
		events: []timedValue{{ts: 7, val: 2}},
	})
	time.Sleep(30 * time.Millisecond)

	require.Empty(t, hooks.Completed(), "no pane should have triggered yet")

	component.SystemContext().Send(context.Background(), producer, emitAllMsg{
		events: []timedValue{{ts: 16, val: 9}},
	})
	time.Sleep(30 * time.Millisecond)

	completed := hooks.Completed()
	require.Len(t, completed, 2)

	panes := map[Pane]int{}
	for _, c := range completed {
		panes[c.pane] = c.acc.(int)
	}
	require.Equal(t, 2, panes[Pane{Start: 0, End: 10}])
	require.Equal(t, 2, panes[Pane{Start: 5, End: 15}])
}

// TestWindowRejectsUnknownMessage checks that a window fatally rejects a
// raw user message (spec.md §4.6 "Unknown message"): its closed set is
// Init/Subscribe/Unsubscribe/ReactTo/Emit only.
func TestWindowRejectsUnknownMessage(t *testing.T) {
	t.Parallel()

	w := &Window{
		base:     component.NewBase(),
		assigner: FixedWindow{Length: 10},
		hooks:    &sumHooks{},
		state:    make(map[paneKey]any),
	}

	result := w.Receive(context.Background(), component.Envelope{
		Kind: component.KindUser,
		User: "unexpected",
	})
	require.True(t, result.IsErr())
}

// TestHandleEmitIngestionIgnoresUnboundSender checks that Emit envelopes
// from a ref/stream the window never bound to are dropped rather than
// folded into any pane.
func TestHandleEmitIngestionIgnoresUnboundSender(t *testing.T) {
	t.Parallel()

	hooks := &sumHooks{}
	w := &Window{
		base:     component.NewBase(),
		assigner: FixedWindow{Length: 10},
		hooks:    hooks,
		state:    make(map[paneKey]any),
	}

	sys := component.NewDefaultSystem()
	defer sys.Shutdown(context.Background())
	stranger := genactor.Spawn(sys, "stranger", producerHooks{}, nil, nil)

	w.handleEmitIngestion(context.Background(), component.Envelope{
		Kind: component.KindEmit,
		From: stranger,
		Emit: component.EmitPayload{Value: timedValue{ts: 1, val: 5}, Stream: "default"},
	})

	require.Empty(t, w.state)
}
