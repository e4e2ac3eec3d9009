package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/softwarelanguageslab/harpy-go/internal/component"
	"github.com/softwarelanguageslab/harpy-go/internal/genactor"
	"github.com/softwarelanguageslab/harpy-go/internal/reactor"
	"github.com/softwarelanguageslab/harpy-go/internal/reactor/rx"
	"github.com/softwarelanguageslab/harpy-go/internal/window"
)

// scenarios maps a run subcommand argument to the function that drives it.
// version.go also reads this map to list the scenarios it knows about.
var scenarios = map[string]func(*component.System) error{
	"s1": scenarioS1,
	"s2": scenarioS2,
	"s3": scenarioS3,
	"s4": scenarioS4,
	"s5": scenarioS5,
	"s6": scenarioS6,
}

var runCmd = &cobra.Command{
	Use:       "run [s1|s2|s3|s4|s5|s6]",
	Short:     "Run one of the specification's literal end-to-end scenarios",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"s1", "s2", "s3", "s4", "s5", "s6"},
	RunE:      runScenario,
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, ok := scenarios[args[0]]
	if !ok {
		return fmt.Errorf("unknown scenario %q (want one of s1-s6)", args[0])
	}

	closeLog, err := wireLogging()
	if err != nil {
		return fmt.Errorf("failed to wire logging: %w", err)
	}
	defer closeLog()

	sys := component.NewDefaultSystem()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		sys.Shutdown(ctx)
	}()

	return scenario(sys)
}

// tickMsg asks a producer actor to emit a fixed sequence of values.
type tickMsg struct {
	values []any
}

type producerHooks struct {
	genactor.BaseHooks
}

func (producerHooks) Receive(ctx context.Context, self *genactor.Self, msg any) error {
	req, ok := msg.(tickMsg)
	if !ok {
		return nil
	}
	for _, v := range req.values {
		self.Emit(ctx, v, "default")
	}
	return nil
}

// scenarioS1 reproduces spec.md S1: a producer emits 1, 2, 3 on "default"
// when it receives a tick; a collector monitoring it accumulates the
// values it sees.
func scenarioS1(sys *component.System) error {
	var mu sync.Mutex
	var got []any

	producer := genactor.Spawn(sys, "producer", producerHooks{}, nil, nil)

	collector := &onEmitHooks{
		target: producer, stream: "default",
		onValue: func(v any) {
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		},
	}
	genactor.Spawn(sys, "collector", collector, nil, nil)

	time.Sleep(20 * time.Millisecond)
	component.SystemContext().Send(context.Background(), producer, tickMsg{
		values: []any{1, 2, 3},
	})
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	fmt.Printf("S1: collector accumulated %v\n", got)
	return nil
}

// onEmitHooks is a general-purpose actor behavior used by the S1-S3
// scenarios to monitor one (ref, stream) pair and forward each value to a
// callback, without needing a bespoke Hooks type per scenario.
type onEmitHooks struct {
	genactor.BaseHooks

	target  component.Reference
	stream  string
	onValue func(value any)
}

func (h *onEmitHooks) InitActor(ctx context.Context, self *genactor.Self, _ []any, _ map[string]any) error {
	self.Monitor(ctx, h.target, h.stream, func(_ context.Context, _ *genactor.Self, value any) {
		h.onValue(value)
	})
	return nil
}

func (h *onEmitHooks) Receive(context.Context, *genactor.Self, any) error {
	return nil
}

// doubleHooks implements spec.md S2: a reactor with one source "x" whose
// pipeline is map(v -> v*2).
type doubleHooks struct{}

func (doubleHooks) BuildDAG(sources map[string]*rx.Subject[any], _ []any, _ map[string]any) reactor.Output {
	doubled := rx.Map[any, any](sources["x"], func(v any) any { return v.(int) * 2 })
	return reactor.SingleOutput(doubled)
}

func scenarioS2(sys *component.System) error {
	var mu sync.Mutex
	var got []any

	reactorRef := reactor.Spawn(sys, "doubler", []string{"x"}, doubleHooks{}, nil, nil)
	producer := genactor.Spawn(sys, "producer", producerHooks{}, nil, nil)
	reactorRef.ReactTo(context.Background(), producer, "x", "default")

	collector := &onEmitHooks{
		target: reactorRef, stream: "default",
		onValue: func(v any) {
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		},
	}
	genactor.Spawn(sys, "collector", collector, nil, nil)

	time.Sleep(20 * time.Millisecond)
	component.SystemContext().Send(context.Background(), producer, tickMsg{
		values: []any{1, 2, 3},
	})
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	fmt.Printf("S2: collector received %v\n", got)
	return nil
}

// multiHooks implements spec.md S3: pipeline returns {"left": src*2,
// "right": src*3}.
type multiHooks struct{}

func (multiHooks) BuildDAG(sources map[string]*rx.Subject[any], _ []any, _ map[string]any) reactor.Output {
	left := rx.Map[any, any](sources["src"], func(v any) any { return v.(int) * 2 })
	right := rx.Map[any, any](sources["src"], func(v any) any { return v.(int) * 3 })

	return reactor.MultiOutput(map[string]rx.Observable[any]{
		"left":  left,
		"right": right,
	})
}

func scenarioS3(sys *component.System) error {
	var mu sync.Mutex
	var left, right []any

	reactorRef := reactor.Spawn(sys, "splitter", []string{"src"}, multiHooks{}, nil, nil)
	producer := genactor.Spawn(sys, "producer", producerHooks{}, nil, nil)
	reactorRef.ReactTo(context.Background(), producer, "src", "default")

	leftCollector := &onEmitHooks{
		target: reactorRef, stream: "left",
		onValue: func(v any) { mu.Lock(); left = append(left, v); mu.Unlock() },
	}
	rightCollector := &onEmitHooks{
		target: reactorRef, stream: "right",
		onValue: func(v any) { mu.Lock(); right = append(right, v); mu.Unlock() },
	}
	genactor.Spawn(sys, "left-collector", leftCollector, nil, nil)
	genactor.Spawn(sys, "right-collector", rightCollector, nil, nil)

	time.Sleep(20 * time.Millisecond)
	component.SystemContext().Send(context.Background(), producer, tickMsg{values: []any{5}})
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	fmt.Printf("S3: left=%v right=%v\n", left, right)
	return nil
}

// timedValue is the windowed event type shared by S4 and S5.
type timedValue struct {
	ts  float64
	val int
}

type sumHooks struct {
	window.BaseHooks
}

func (sumHooks) Timestamp(value any) float64 { return value.(timedValue).ts }

func (sumHooks) AddToWindow(value any, prev any) any {
	acc := 0
	if prev != nil {
		acc = prev.(int)
	}
	return acc + value.(timedValue).val
}

func (sumHooks) WindowComplete(_ context.Context, _ *window.Self, pane window.Pane, _ any, acc any) {
	fmt.Printf("pane [%.0f,%.0f) complete: %v\n", pane.Start, pane.End, acc)
}

func scenarioS4(sys *component.System) error {
	windowRef := window.Spawn(
		sys, "fixed-window", window.FixedWindow{Length: 10, Offset: 0},
		sumHooks{}, nil, nil,
	)
	producer := genactor.Spawn(sys, "producer", producerHooks{}, nil, nil)
	windowRef.ReactTo(context.Background(), producer, "default")

	time.Sleep(20 * time.Millisecond)

	fmt.Println("S4: Fixed(length=10, offset=0)")
	for _, ev := range []timedValue{{1, 5}, {3, 7}, {12, 1}} {
		component.SystemContext().Send(context.Background(), producer, tickMsg{
			values: []any{ev},
		})
		time.Sleep(20 * time.Millisecond)
	}
	return nil
}

func scenarioS5(sys *component.System) error {
	assigner := window.SlidingWindow{Frequency: 5, Length: 10, Offset: 0}
	windowRef := window.Spawn(sys, "sliding-window", assigner, sumHooks{}, nil, nil)
	producer := genactor.Spawn(sys, "producer", producerHooks{}, nil, nil)
	windowRef.ReactTo(context.Background(), producer, "default")

	time.Sleep(20 * time.Millisecond)

	fmt.Println("S5: Sliding(frequency=5, length=10)")
	for _, ev := range []timedValue{{7, 2}, {16, 9}} {
		component.SystemContext().Send(context.Background(), producer, tickMsg{
			values: []any{ev},
		})
		time.Sleep(20 * time.Millisecond)
	}
	return nil
}

func scenarioS6(sys *component.System) error {
	var mu sync.Mutex
	var entries []time.Time

	hooks := genactor.NewLoop(1*time.Second, func(_ context.Context, _ *genactor.Self) {
		mu.Lock()
		entries = append(entries, time.Now())
		mu.Unlock()
	})
	genactor.Spawn(sys, "looper", hooks, nil, nil)

	fmt.Println("S6: looping actor ticking every 1s for 3s")
	time.Sleep(3 * time.Second)

	mu.Lock()
	defer mu.Unlock()
	fmt.Printf("S6: recorded %d ticks\n", len(entries))
	return nil
}
