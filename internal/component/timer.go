package component

import (
	"context"
	"time"
)

// ScheduleWakeup arranges a Wakeup{payload, generation} envelope to be
// delivered to ref after at least delay has elapsed (spec.md §4.1
// "scheduleWakeup"). Timers are independent of mailbox backpressure: the
// delivery attempt is made exactly once, delay after this call, and may be
// delayed further by a full or slow mailbox, but is never delivered early.
//
// generation lets the caller implement the guard spec.md §5 recommends for
// timers that cannot be individually cancelled: a component that reschedules
// itself can compare the generation on an arriving Wakeup against the
// generation of its most recent SendSelfAfter call and discard stale ones.
func ScheduleWakeup(ref Reference, delay time.Duration, payload any, generation uint64) {
	time.AfterFunc(delay, func() {
		ref.tell(context.Background(), Envelope{
			Kind:   KindWakeup,
			Wakeup: WakeupPayload{Payload: payload, Generation: generation},
		})
	})
}
