package genactor

import (
	"context"
	"time"

	"github.com/softwarelanguageslab/harpy-go/internal/component"
)

// Tick is called once per Loop iteration.
type Tick func(ctx context.Context, self *Self)

// loopSentinel tags the Wakeup payloads a Loop schedules for itself, so its
// Receive hook can tell its own ticks apart from any other wakeup the
// embedding hooks might also schedule.
type loopSentinel struct{}

// loopHooks implements a periodic actor: schedule the next tick, then run
// the current one (spec.md §4.4 "Loop"), so that the tick body's own
// duration is folded into the next interval rather than added on top of it
// (the reschedule happens before tick runs, not after).
type loopHooks struct {
	BaseHooks

	interval time.Duration
	tick     Tick
}

// NewLoop returns Hooks that call tick every interval, starting interval
// after the actor is spawned. Embed the returned Hooks' InitActor behavior
// is fixed; actors that need additional construction-time setup should
// compose their own Hooks and call Self.SendSelfAfter directly instead of
// using NewLoop.
func NewLoop(interval time.Duration, tick Tick) Hooks {
	return &loopHooks{interval: interval, tick: tick}
}

func (l *loopHooks) InitActor(_ context.Context, self *Self, _ []any, _ map[string]any) error {
	self.SendSelfAfter(l.interval, loopSentinel{})
	return nil
}

func (l *loopHooks) Receive(ctx context.Context, self *Self, msg any) error {
	wakeup, ok := msg.(component.WakeupPayload)
	if !ok {
		return nil
	}

	if _, ok := wakeup.Payload.(loopSentinel); !ok {
		return nil
	}

	self.SendSelfAfter(l.interval, loopSentinel{})
	l.tick(ctx, self)

	return nil
}
