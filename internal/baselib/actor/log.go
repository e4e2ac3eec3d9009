package actor

import "github.com/btcsuite/btclog/v2"

// log is the package-level logger used for actor lifecycle events (spawn,
// shutdown, mailbox state transitions). It defaults to a disabled logger so
// that importing this package has no logging side effects until a host
// explicitly wires one in via UseLogger.
var log btclog.Logger = btclog.Disabled

// UseLogger sets the package-level logger used by the actor package. Callers
// that want visibility into actor lifecycle events (registration, shutdown,
// mailbox draining) should call this once during startup, typically with a
// logger obtained from a shared btclog.Handler (see internal/build.HandlerSet).
func UseLogger(logger btclog.Logger) {
	log = logger
}
