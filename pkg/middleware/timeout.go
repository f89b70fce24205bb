package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/executor"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// TimeoutMiddleware enforces execution timeouts for nodes.
// If a node takes longer than the configured timeout, execution is cancelled.
type TimeoutMiddleware struct {
	defaultTimeout time.Duration
}

// NewTimeoutMiddleware creates a new timeout middleware with default timeout
func NewTimeoutMiddleware(defaultTimeout time.Duration) *TimeoutMiddleware {
	return &TimeoutMiddleware{
		defaultTimeout: defaultTimeout,
	}
}

// Process enforces execution timeout
func (m *TimeoutMiddleware) Process(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage, next Handler) (map[string]types.Value, error) {
	timeout := m.defaultTimeout

	if timeout <= 0 {
		return next(ctx, nodeID, kind, inputs, config)
	}

	type result struct {
		value map[string]types.Value
		err   error
	}
	resultChan := make(chan result, 1)

	go func() {
		value, err := next(ctx, nodeID, kind, inputs, config)
		resultChan <- result{value: value, err: err}
	}()

	select {
	case res := <-resultChan:
		return res.value, res.err
	case <-time.After(timeout):
		return nil, fmt.Errorf("node execution timeout after %v", timeout)
	}
}

// Name returns the middleware name
func (m *TimeoutMiddleware) Name() string {
	return "Timeout"
}

// TimeoutMiddlewareWithContext is a context-aware timeout middleware
// that respects context cancellation
type TimeoutMiddlewareWithContext struct {
	defaultTimeout time.Duration
}

// NewTimeoutMiddlewareWithContext creates a context-aware timeout middleware
func NewTimeoutMiddlewareWithContext(defaultTimeout time.Duration) *TimeoutMiddlewareWithContext {
	return &TimeoutMiddlewareWithContext{
		defaultTimeout: defaultTimeout,
	}
}

// Process enforces execution timeout using context
func (m *TimeoutMiddlewareWithContext) Process(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage, next Handler) (map[string]types.Value, error) {
	timeout := m.defaultTimeout

	if timeout <= 0 {
		return next(ctx, nodeID, kind, inputs, config)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx.Context(), timeout)
	defer cancel()

	type result struct {
		value map[string]types.Value
		err   error
	}
	resultChan := make(chan result, 1)

	go func() {
		value, err := next(ctx, nodeID, kind, inputs, config)
		resultChan <- result{value: value, err: err}
	}()

	select {
	case res := <-resultChan:
		return res.value, res.err
	case <-timeoutCtx.Done():
		return nil, fmt.Errorf("node execution timeout after %v", timeout)
	}
}

// Name returns the middleware name
func (m *TimeoutMiddlewareWithContext) Name() string {
	return "TimeoutWithContext"
}
