package component

import "errors"

// ErrInitAlready indicates a component received a second Init message. Per
// spec.md §4.3/§7 this is fatal: the host guarantees Init is delivered
// first, and exactly once.
var ErrInitAlready = errors.New("component received a second Init message")

// ErrUnknownMessage indicates a reactor or window received a KindUser
// message, which is outside their closed message set (spec.md §4.1
// "Any other (user-defined) ... reactor and window reject with a fatal
// error").
var ErrUnknownMessage = errors.New("component received an unrecognized message")
