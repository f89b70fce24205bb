// Package engine provides the core flow execution engine: it walks a
// FlowDocument's dependency graph layer by layer, dispatching each node
// through the registry (optionally wrapped by middleware) and reporting
// progress through an observer.EventSink.
//
// # Basic Usage
//
//	import (
//	    "context"
//	    "github.com/yesoreyeram/thaiyyal/backend/pkg/engine"
//	    "github.com/yesoreyeram/thaiyyal/backend/pkg/observer"
//	)
//
//	eng := engine.New()
//	result, err := eng.Execute(context.Background(), doc, observer.NoOpSink{})
//	if err != nil {
//	    // graph construction, cycle, or cancellation — no result produced
//	    log.Fatalf("execution rejected: %v", err)
//	}
//	if !result.Success {
//	    // one or more nodes failed; inspect result.NodeResults
//	}
//
// # Advanced Usage
//
//	eng := engine.New(
//	    engine.WithConfig(*config.Production()),
//	    engine.WithLLM(ollamaClient),
//	    engine.WithMiddleware(
//	        middleware.NewLoggingMiddleware(logger),
//	        middleware.NewMetricsMiddleware(collector),
//	    ),
//	)
//
// # Execution Model
//
//  1. Build the graph from the document; a dangling edge or duplicate node
//     ID is rejected before any node runs.
//  2. Compute depth layers via Kahn's algorithm; a cycle is rejected before
//     any node runs.
//  3. Walk layers in order. Nodes within a layer run concurrently, bounded
//     by GOMAXPROCS; they never observe each other's outputs.
//  4. A node failure is recorded and does not stop the run — downstream
//     nodes see Null for that node's outputs. Graph, cycle, and
//     cancellation errors instead terminate the run immediately.
//
// # Thread Safety
//
// Execute may be called concurrently on the same Engine; Stop cancels
// whichever single execution is currently in flight.
package engine
