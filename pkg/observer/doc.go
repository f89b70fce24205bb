// Package observer streams execution progress out of the engine.
//
// A run emits four event types, always in this order per node:
//
//	NodeStarted -> (NodeCompleted | NodeError)
//
// followed by exactly one ExecutionComplete once every layer has run, or
// none at all if the run was rejected before it started (a cycle) or
// cancelled before any layer completed. NodeError does not stop the run;
// downstream nodes still execute and see a null value in place of the
// failed node's output.
//
// Manager fans events out to any number of registered EventSink
// implementations, synchronously and in registration order, so a caller
// inspecting recorded events immediately after Execute returns sees
// everything the run emitted. A sink that panics is recovered and does
// not affect its peers.
package observer
