package observer

import (
	"github.com/yesoreyeram/thaiyyal/backend/pkg/logging"
)

// LoggingSink is an EventSink that writes every event through a structured
// logger. This is the observer a caller reaches for when it wants execution
// visibility without wiring its own sink.
type LoggingSink struct {
	logger *logging.Logger
}

// NewLoggingSink creates a sink backed by logger. A nil logger falls back
// to logging.FromContext's default.
func NewLoggingSink(logger *logging.Logger) *LoggingSink {
	if logger == nil {
		logger = logging.New(logging.DefaultConfig())
	}
	return &LoggingSink{logger: logger}
}

func (s *LoggingSink) NodeStarted(e NodeStartedEvent) {
	s.logger.WithNodeID(e.NodeID).Debug("node started")
}

func (s *LoggingSink) NodeCompleted(e NodeCompletedEvent) {
	s.logger.WithNodeID(e.NodeID).
		WithField("duration_ms", e.DurationMs).
		WithField("preview", e.Preview).
		Debug("node completed")
}

func (s *LoggingSink) NodeError(e NodeErrorEvent) {
	s.logger.WithNodeID(e.NodeID).WithField("error", e.Message).Warn("node failed")
}

func (s *LoggingSink) ExecutionComplete(e ExecutionCompleteEvent) {
	s.logger.WithField("duration_ms", e.TotalDurationMs).Info("execution complete")
}
