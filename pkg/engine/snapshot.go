package engine

import "github.com/yesoreyeram/thaiyyal/backend/pkg/types"

// Snapshot is a point-in-time view of the execution currently running on
// an Engine: which nodes have finished (success or failure) and the
// result recorded for each. It backs the host IPC's status query during a
// long-running execution, in particular right after a stop_execution()
// call, when the host wants to know how far the run got before it
// noticed cancellation.
type Snapshot struct {
	ExecutionID string
	Cancelled   bool
	NodeResults map[string]types.NodeResult
}

// Snapshot returns the current state of whichever execution is in flight
// on e, or nil if none is running. The returned NodeResults is a copy and
// safe to read without further synchronization; it only reflects nodes
// that have completed or failed so far — a node mid-Execute has no entry
// yet.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.Lock()
	id := e.currentID
	cancelFlag := e.current
	results := e.currentRes
	resultsMu := e.currentMu
	e.mu.Unlock()

	if cancelFlag == nil {
		return nil
	}

	resultsMu.Lock()
	copied := make(map[string]types.NodeResult, len(results))
	for k, v := range results {
		copied[k] = v
	}
	resultsMu.Unlock()

	return &Snapshot{
		ExecutionID: id,
		Cancelled:   cancelFlag.Load(),
		NodeResults: copied,
	}
}
