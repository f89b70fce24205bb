package engine

import "fmt"

// Kind classifies an engine-level failure. The engine's own user-visible
// error strings are always prefixed with a tag identifying the kind, so
// callers (and log lines) can tell a cycle rejection from a single node's
// failure without parsing the message body.
type Kind int

const (
	KindNodeExecution Kind = iota
	KindGraph
	KindCycleDetected
	KindCancelled
	KindHTTP
	KindOllama
	KindIO
	KindSerialization
	KindValidation
	KindOther
)

// Error is the engine's uniform error type. NodeID is set only for
// KindNodeExecution, attributing the failure to the node that raised it.
type Error struct {
	Kind    Kind
	NodeID  string
	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNodeExecution:
		return fmt.Sprintf("Node error [%s]: %s", e.NodeID, e.Message)
	case KindGraph:
		return fmt.Sprintf("Graph error: %s", e.Message)
	case KindCycleDetected:
		return "Cycle detected in graph"
	case KindCancelled:
		return "Execution cancelled"
	case KindHTTP:
		return fmt.Sprintf("HTTP error: %s", e.Message)
	case KindOllama:
		return fmt.Sprintf("Ollama error: %s", e.Message)
	case KindIO:
		return fmt.Sprintf("IO error: %s", e.Message)
	case KindSerialization:
		return fmt.Sprintf("Serialization error: %s", e.Message)
	case KindValidation:
		return fmt.Sprintf("Validation error: %s", e.Message)
	default:
		return fmt.Sprintf("Error: %s", e.Message)
	}
}

// NodeExecutionError attributes err to nodeID as a KindNodeExecution
// engine error, the shape every node-level failure is translated into
// before it leaves the engine.
func NodeExecutionError(nodeID string, err error) *Error {
	return &Error{Kind: KindNodeExecution, NodeID: nodeID, Message: err.Error()}
}

// GraphError wraps a graph-construction failure (dangling edge, duplicate
// id) as a KindGraph engine error.
func GraphError(err error) *Error {
	return &Error{Kind: KindGraph, Message: err.Error()}
}

// CycleDetectedError reports a graph cycle, fatal and raised before any
// event is emitted. Carries no message: its Error() string is fixed.
func CycleDetectedError() *Error {
	return &Error{Kind: KindCycleDetected}
}

// CancelledError reports a run cancelled at a layer boundary. Carries no
// message: its Error() string is fixed.
func CancelledError() *Error {
	return &Error{Kind: KindCancelled}
}
