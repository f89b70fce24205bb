package observer

import "errors"

// ErrObserverPanic marks a panic recovered from a sink during dispatch.
// The manager itself never returns this; it exists for sinks that want to
// report their own recovered panics upstream.
var ErrObserverPanic = errors.New("observer panic")
