package genactor

import "github.com/btcsuite/btclog/v2"

var log btclog.Logger = btclog.Disabled

// UseLogger configures the logger used by this package, following the same
// subsystem-logger convention as internal/baselib/actor.
func UseLogger(logger btclog.Logger) {
	log = logger
}
