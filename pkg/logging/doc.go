// Package logging provides structured logging capabilities for the workflow engine.
//
// # Overview
//
// The logging package wraps Go's log/slog with workflow-specific context
// propagation and chained field builders, giving every log line execution_id,
// workflow_id, and node_id fields without threading them through call sites
// by hand.
//
// # Features
//
//   - Structured logging: JSON or text output via slog
//   - Log levels: debug, info, warn, error
//   - Context propagation: execution ID, workflow ID, node ID attached via WithContext
//   - Chainable field builders: WithField, WithFields, WithError, WithNodeID, ...
//   - Thread-safe: safe for concurrent use (delegates to slog's handler)
//
// # Log Levels
//
// The package supports standard log levels:
//
//   - debug: Detailed diagnostic information
//   - info: General informational messages
//   - warn: Warning messages for potential issues
//   - error: Error messages for failures
//
// # Basic Usage
//
//	import "github.com/yesoreyeram/thaiyyal/backend/pkg/logging"
//
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Output: os.Stdout,
//	    Pretty: false,
//	})
//
//	logger.WithFields(map[string]interface{}{
//	    "workflow_id": "wf-123",
//	    "node_count":  42,
//	}).Info("Workflow started")
//
//	logger.WithError(err).WithField("node_id", "node-5").Error("Execution failed")
//
// # Context Integration
//
// WithContext attaches a logger to a context.Context so downstream code can
// retrieve it without passing it explicitly:
//
//	ctx = logger.WithWorkflowID(flow.ID).WithContext(ctx)
//	// ... elsewhere:
//	if l, ok := ctx.Value(logging.ContextKeyLogger).(*logging.Logger); ok {
//	    l.Info("node executing")
//	}
//
// # Chained Fields
//
// Field builders return a new *Logger, so they compose:
//
//	logger.
//	    WithExecutionID(execID).
//	    WithNodeID(node.ID).
//	    WithNodeKind(node.Kind).
//	    Info("node executing")
//
// # Configuration
//
// Logger configuration options:
//
//	config := logging.Config{
//	    Level:         "debug", // debug, info, warn, error
//	    Output:        os.Stdout,
//	    Pretty:        true, // human-readable text instead of JSON
//	    IncludeCaller: true, // include file:line
//	}
//
// DefaultConfig returns the engine's standard production defaults (info
// level, JSON output to stdout, no caller info).
//
// # Common Logging Patterns
//
// Workflow execution:
//
//	logger.WithField("workflow_id", flow.ID).
//	    WithField("node_count", len(flow.Nodes)).
//	    Info("workflow execution started")
//
// Node execution:
//
//	logger.WithNodeID(node.ID).WithNodeKind(node.Kind).Debug("node executing")
//
// Error logging:
//
//	logger.WithError(err).WithNodeID(node.ID).WithField("retry_count", retries).
//	    Error("node execution failed")
//
// # Integration with the Engine
//
// The engine accepts a configured logger at construction time and uses it to
// log execution lifecycle events (execution start and completion,
// cancellation, node failures and completions):
//
//	logger := logging.New(logging.DefaultConfig())
//	eng := engine.New(engine.WithLogger(logger))
//
// # Best Practices
//
//   - Prefer WithField/WithFields over formatting values into the message string
//   - Include execution context (workflow_id, node_id, etc.) via the chained builders
//   - Log at appropriate levels (avoid debug in production)
//   - Use WithError rather than embedding err.Error() in a field manually
//   - Use consistent field names across the codebase
//
// # Thread Safety
//
// Logger methods are safe for concurrent use. Each WithField/WithFields/
// WithError call returns a new *Logger rather than mutating the receiver, so
// a base logger can be shared and specialized per goroutine without races.
//
// # Testing
//
// For testing, point a logger at a buffer and assert on its output:
//
//	buf := &bytes.Buffer{}
//	logger := logging.New(logging.Config{Output: buf, Level: "debug"})
//
//	logger.Info("expected message")
//	assert.Contains(t, buf.String(), "expected message")
package logging
