// Package middleware provides a chain-of-responsibility wrapper around node
// execution, for cross-cutting concerns like logging, metrics, retries,
// timeouts, and resource limits.
//
// # Middleware Interface
//
//	type Handler func(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error)
//
//	type Middleware interface {
//	    Process(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage, next Handler) (map[string]types.Value, error)
//	    Name() string
//	}
//
// # Basic Usage
//
//	chain := middleware.NewChain()
//	chain.Use(middleware.NewLoggingMiddleware(logger))
//	chain.Use(middleware.NewMetricsMiddleware(collector))
//	chain.Use(middleware.NewTimeoutMiddlewareWithContext(5 * time.Second))
//
//	handler := func(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
//	    return registry.Execute(ctx, kind, inputs, config)
//	}
//	result, err := chain.Execute(ctx, nodeID, kind, inputs, config, handler)
//
// # Middleware Chain
//
// Middleware wraps in registration order, so the first one registered is
// the outermost layer:
//
//	Chain:  [Logging] -> [Metrics] -> [Timeout] -> [node.Execute]
//
// Each middleware decides whether to call next: a middleware that returns
// without calling next short-circuits everything after it, including the
// node itself.
//
// # Built-in Middleware
//
//   - LoggingMiddleware: logs node start/success/failure with timing
//   - MetricsMiddleware: records execution counts and durations per node kind
//   - RetryMiddleware / ConditionalRetryMiddleware: retries on failure with
//     configurable backoff and a retryable-error predicate
//   - TimeoutMiddleware / TimeoutMiddlewareWithContext: bounds execution time,
//     the latter by deriving a child context from ctx.Context()
//   - ValidationMiddleware: rejects unregistered node kinds before execution
//   - InputValidationMiddleware: bounds input count and string size
//   - RateLimitMiddleware: token-bucket limiting, global and per-node-kind
//   - SizeLimitMiddleware: bounds input/output size, string length, array
//     length, and (via ValidateFlowSize) whole-flow node/edge/byte counts
//
// # Thread Safety
//
// Middleware implementations should be stateless or internally synchronized;
// the same instance is shared across concurrent node executions within a run.
package middleware
