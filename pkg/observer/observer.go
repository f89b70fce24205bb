// Package observer provides the Observer pattern implementation for flow
// execution monitoring: an EventSink receives the four wire-level events a
// run emits, letting a caller stream progress without coupling to the
// engine's internals.
package observer

// NodeStartedEvent is emitted just before a node's Execute is invoked.
type NodeStartedEvent struct {
	NodeID string
}

// NodeCompletedEvent is emitted after a node succeeds.
type NodeCompletedEvent struct {
	NodeID     string
	Preview    string
	DurationMs int64
}

// NodeErrorEvent is emitted after a node fails. The run continues past
// this — a NodeErrorEvent is not terminal.
type NodeErrorEvent struct {
	NodeID  string
	Message string
}

// ExecutionCompleteEvent is emitted once, after the last layer finishes.
// It is never emitted on a cancelled or graph-rejected run.
type ExecutionCompleteEvent struct {
	TotalDurationMs int64
}

// EventSink receives the four events a run emits, in the fixed order
// NodeStarted -> (NodeCompleted | NodeError) -> ... -> ExecutionComplete.
type EventSink interface {
	NodeStarted(event NodeStartedEvent)
	NodeCompleted(event NodeCompletedEvent)
	NodeError(event NodeErrorEvent)
	ExecutionComplete(event ExecutionCompleteEvent)
}

// NoOpSink discards every event. Useful as a default when a caller does
// not need progress streaming.
type NoOpSink struct{}

func (NoOpSink) NodeStarted(NodeStartedEvent)           {}
func (NoOpSink) NodeCompleted(NodeCompletedEvent)       {}
func (NoOpSink) NodeError(NodeErrorEvent)               {}
func (NoOpSink) ExecutionComplete(ExecutionCompleteEvent) {}

// Manager fans a single run's events out to any number of registered
// sinks, synchronously and in registration order: a caller that inspects
// recorded events immediately after a run returns must see every event
// the run emitted, so notification cannot outlive Execute the way a
// fire-and-forget goroutine would. A panicking sink is recovered and does
// not affect its peers or the run itself.
type Manager struct {
	sinks []EventSink
}

// NewManager creates an empty manager.
func NewManager(sinks ...EventSink) *Manager {
	return &Manager{sinks: sinks}
}

// Register adds sink to the manager.
func (m *Manager) Register(sink EventSink) {
	if sink != nil {
		m.sinks = append(m.sinks, sink)
	}
}

func (m *Manager) dispatch(f func(EventSink)) {
	for _, s := range m.sinks {
		func() {
			defer func() { recover() }()
			f(s)
		}()
	}
}

func (m *Manager) NodeStarted(e NodeStartedEvent) {
	m.dispatch(func(s EventSink) { s.NodeStarted(e) })
}

func (m *Manager) NodeCompleted(e NodeCompletedEvent) {
	m.dispatch(func(s EventSink) { s.NodeCompleted(e) })
}

func (m *Manager) NodeError(e NodeErrorEvent) {
	m.dispatch(func(s EventSink) { s.NodeError(e) })
}

func (m *Manager) ExecutionComplete(e ExecutionCompleteEvent) {
	m.dispatch(func(s EventSink) { s.ExecutionComplete(e) })
}
