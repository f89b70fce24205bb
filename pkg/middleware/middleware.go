// Package middleware provides the Chain of Responsibility pattern implementation
// for node execution middleware. This enables cross-cutting concerns like logging,
// metrics, validation, and timeouts to be added without modifying executor logic.
package middleware

import (
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/executor"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// Handler executes one node and returns its outputs. It takes the node ID
// in addition to executor.Registry.Execute's parameters; the engine wraps
// the registry's dispatch in a Handler that drops the ID, so the registry
// does not know middleware exists.
type Handler func(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error)

// Middleware defines the interface for execution middleware.
// Middleware can inspect, modify, or short-circuit node execution.
//
// Example middleware implementations:
//   - LoggingMiddleware: logs execution start/end
//   - MetricsMiddleware: records performance metrics
//   - ValidationMiddleware: validates inputs before execution
//   - TimeoutMiddleware: enforces execution timeouts
//   - RetryMiddleware: retries failed executions
type Middleware interface {
	// Process handles the node execution, optionally calling next() to continue the chain.
	// The middleware can:
	//   - Pre-process: modify context or node before calling next
	//   - Execute: call next to continue the chain
	//   - Post-process: inspect or modify the result after next returns
	//   - Short-circuit: return without calling next (e.g., cache hit)
	Process(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage, next Handler) (map[string]types.Value, error)

	// Name returns the middleware name for logging and debugging
	Name() string
}

// Chain represents an ordered chain of middleware.
// Middleware are executed in the order they were added.
type Chain struct {
	middlewares []Middleware
}

// NewChain creates a new middleware chain
func NewChain() *Chain {
	return &Chain{
		middlewares: make([]Middleware, 0),
	}
}

// Use adds middleware to the chain.
// Middleware are executed in the order they are added.
func (c *Chain) Use(middleware Middleware) *Chain {
	c.middlewares = append(c.middlewares, middleware)
	return c
}

// Execute runs the middleware chain followed by the final handler.
//
// Example execution flow with 3 middleware:
//
//	M1.Process(pre) -> M2.Process(pre) -> M3.Process(pre) -> handler() ->
//	M3.Process(post) -> M2.Process(post) -> M1.Process(post) -> return
func (c *Chain) Execute(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage, handler Handler) (map[string]types.Value, error) {
	if len(c.middlewares) == 0 {
		return handler(ctx, nodeID, kind, inputs, config)
	}

	index := 0
	var next Handler
	next = func(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
		if index >= len(c.middlewares) {
			return handler(ctx, nodeID, kind, inputs, config)
		}
		mw := c.middlewares[index]
		index++
		return mw.Process(ctx, nodeID, kind, inputs, config, next)
	}

	return next(ctx, nodeID, kind, inputs, config)
}

// Len returns the number of middleware in the chain
func (c *Chain) Len() int {
	return len(c.middlewares)
}

// Middlewares returns all middleware in the chain
func (c *Chain) Middlewares() []Middleware {
	result := make([]Middleware, len(c.middlewares))
	copy(result, c.middlewares)
	return result
}
