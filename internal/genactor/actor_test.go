package genactor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/softwarelanguageslab/harpy-go/internal/component"
)

// tickMsg asks a producer to emit 1, 2, 3 on its default stream.
type tickMsg struct{}

type producerHooks struct {
	BaseHooks
}

func (producerHooks) Receive(ctx context.Context, self *Self, msg any) error {
	if _, ok := msg.(tickMsg); !ok {
		return nil
	}
	for _, v := range []int{1, 2, 3} {
		self.Emit(ctx, v, "default")
	}
	return nil
}

// accumulator is the S1 collector: appends every monitored value to a
// thread-safe slice.
type accumulator struct {
	BaseHooks

	mu     sync.Mutex
	values []int
}

func (a *accumulator) InitActor(ctx context.Context, self *Self, args []any, _ map[string]any) error {
	producer := args[0].(component.Reference)
	self.Monitor(ctx, producer, "default", func(ctx context.Context, _ *Self, value any) {
		a.mu.Lock()
		a.values = append(a.values, value.(int))
		a.mu.Unlock()
	})
	return nil
}

func (a *accumulator) Received() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]int, len(a.values))
	copy(out, a.values)
	return out
}

func (a *accumulator) Receive(ctx context.Context, self *Self, msg any) error {
	if req, ok := msg.(unmonitorMsg); ok {
		self.Unmonitor(ctx, req.ref, req.stream)
	}
	return nil
}

// TestMonitorAndEmitScenario reproduces spec.md S1: a collector monitoring
// a producer's default stream accumulates every emitted value, in order.
func TestMonitorAndEmitScenario(t *testing.T) {
	t.Parallel()

	sys := component.NewDefaultSystem()
	defer sys.Shutdown(context.Background())

	producer := Spawn(sys, "producer", producerHooks{}, nil, nil)

	acc := &accumulator{}
	Spawn(sys, "collector", acc, []any{component.Reference(producer)}, nil)

	time.Sleep(20 * time.Millisecond)

	component.SystemContext().Send(context.Background(), producer, tickMsg{})

	time.Sleep(30 * time.Millisecond)

	require.Equal(t, []int{1, 2, 3}, acc.Received())
}

// TestUnmonitorStopsDelivery checks that after Unmonitor, further emits from
// the same (ref, stream) no longer invoke the callback.
func TestUnmonitorStopsDelivery(t *testing.T) {
	t.Parallel()

	sys := component.NewDefaultSystem()
	defer sys.Shutdown(context.Background())

	producer := Spawn(sys, "producer", producerHooks{}, nil, nil)

	acc := &accumulator{}
	collector := Spawn(sys, "collector", acc, []any{component.Reference(producer)}, nil)

	time.Sleep(20 * time.Millisecond)
	component.SystemContext().Send(context.Background(), producer, tickMsg{})
	time.Sleep(30 * time.Millisecond)

	require.Equal(t, []int{1, 2, 3}, acc.Received())

	component.SystemContext().Send(context.Background(), collector, unmonitorMsg{
		ref: producer, stream: "default",
	})
	time.Sleep(20 * time.Millisecond)

	component.SystemContext().Send(context.Background(), producer, tickMsg{})
	time.Sleep(30 * time.Millisecond)

	require.Equal(t, []int{1, 2, 3}, acc.Received(), "no new values after unmonitor")
}

type unmonitorMsg struct {
	ref    component.Reference
	stream string
}

// TestLoopingActorScenario reproduces spec.md S6: a @loop(1s)-style actor
// ticks on its own schedule even with no external messages arriving. Uses a
// short interval to keep the test fast.
func TestLoopingActorScenario(t *testing.T) {
	t.Parallel()

	sys := component.NewDefaultSystem()
	defer sys.Shutdown(context.Background())

	var mu sync.Mutex
	var ticks int

	hooks := NewLoop(15*time.Millisecond, func(ctx context.Context, self *Self) {
		mu.Lock()
		ticks++
		mu.Unlock()
	})
	Spawn(sys, "looper", hooks, nil, nil)

	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, ticks, 3)
}
