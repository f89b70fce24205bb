package graph

import "errors"

// Sentinel errors for graph construction. The engine wraps these into a
// Graph-kind or CycleDetected-kind error before they reach a caller.
var (
	ErrDanglingEdge = errors.New("edge refers to a node that does not exist")
	ErrDuplicateID  = errors.New("duplicate node id")
	ErrCycle        = errors.New("graph contains a cycle")
)
