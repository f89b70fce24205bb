// Package engine orchestrates flow execution: it builds the graph from a
// flow document, walks its layers, dispatches each node through the
// executor registry, and assembles a final ExecutionResult.
package engine

import (
	"context"
	"encoding/json"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/config"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/executor"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/graph"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/logging"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/middleware"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/observer"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// Engine is the workflow execution engine. It manages the node registry,
// resource configuration, and cross-cutting middleware, and coordinates
// node execution in layer order.
//
// An Engine instance is reentrant — Execute may be called concurrently —
// but Stop cancels whichever single execution is currently running on it,
// matching the host's one-engine-per-execution stop_execution() command.
type Engine struct {
	registry *executor.Registry
	config   types.Config
	logger   *logging.Logger
	chain    *middleware.Chain
	llm      executor.LLMClient

	mu         sync.Mutex
	current    *atomic.Bool
	currentID  string
	currentRes map[string]types.NodeResult
	currentMu  *sync.Mutex
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithConfig overrides the engine's resource limits and security policy.
func WithConfig(cfg types.Config) Option {
	return func(e *Engine) { e.config = cfg }
}

// WithRegistry overrides the default node catalog. Useful for injecting
// custom node kinds alongside or instead of the built-ins.
func WithRegistry(registry *executor.Registry) Option {
	return func(e *Engine) { e.registry = registry }
}

// WithLLM wires the collaborator the llmPrompt/llmChat node kinds call
// through. Without it those two kinds fail with an "ollama error: no LLM
// collaborator configured" node error.
func WithLLM(llm executor.LLMClient) Option {
	return func(e *Engine) { e.llm = llm }
}

// WithLogger overrides the engine's structured logger.
func WithLogger(logger *logging.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMiddleware installs cross-cutting middleware around every node
// execution, in registration order (the first one here is outermost).
func WithMiddleware(mw ...middleware.Middleware) Option {
	return func(e *Engine) {
		for _, m := range mw {
			e.chain.Use(m)
		}
	}
}

// New creates an Engine with the given options layered over sensible
// defaults: the built-in node catalog, Default resource limits, a plain
// stdout logger, and an empty middleware chain.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: DefaultRegistry(),
		config:   *config.Default(),
		logger:   logging.New(logging.DefaultConfig()),
		chain:    middleware.NewChain(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stop cancels the execution currently running on this Engine instance, if
// any. It has no effect if no execution is in flight. Cancellation is
// observed at the next layer boundary, not mid-node.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current != nil {
		e.current.Store(true)
	}
}

// runContext is the per-execution view handed to every node as its
// executor.ExecutionContext. cancelled combines the engine-level Stop flag
// with the run's own context deadline/cancellation.
type runContext struct {
	ctx       context.Context
	cancelled *atomic.Bool
	config    types.Config
	llm       executor.LLMClient
}

func (r *runContext) Context() context.Context { return r.ctx }

func (r *runContext) Cancelled() bool {
	return r.cancelled.Load() || r.ctx.Err() != nil
}

func (r *runContext) Config() types.Config { return r.config }

func (r *runContext) LLM() executor.LLMClient { return r.llm }

// Execute runs doc to completion: it builds and validates the graph, walks
// its layers in order, and dispatches each node through the registry
// (wrapped by any installed middleware). A node failure does not stop the
// run — it is recorded and the run continues, per the non-short-circuiting
// contract. A graph-construction failure, a cycle, or a cancellation
// terminates the run immediately and is returned as an error with no
// ExecutionResult; sink never sees ExecutionComplete in that case.
func (e *Engine) Execute(ctx context.Context, doc types.FlowDocument, sink observer.EventSink) (*types.ExecutionResult, error) {
	if sink == nil {
		sink = observer.NoOpSink{}
	}

	g, err := graph.Build(doc)
	if err != nil {
		return nil, GraphError(err)
	}

	layers, err := g.Layers()
	if err != nil {
		return nil, CycleDetectedError()
	}

	executionID := uuid.NewString()
	log := e.logger.WithExecutionID(executionID)

	runCtx := ctx
	var cancel context.CancelFunc
	if e.config.MaxExecutionTime > 0 {
		runCtx, cancel = context.WithTimeout(ctx, e.config.MaxExecutionTime)
		defer cancel()
	}

	cancelFlag := &atomic.Bool{}
	nodeResults := make(map[string]types.NodeResult, len(doc.Nodes))
	var resultsMu sync.Mutex

	e.mu.Lock()
	e.current = cancelFlag
	e.currentID = executionID
	e.currentRes = nodeResults
	e.currentMu = &resultsMu
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		if e.current == cancelFlag {
			e.current = nil
			e.currentID = ""
			e.currentRes = nil
			e.currentMu = nil
		}
		e.mu.Unlock()
	}()

	rctx := &runContext{ctx: runCtx, cancelled: cancelFlag, config: e.config, llm: e.llm}

	log.Info("execution started")
	start := time.Now()

	outputs := make(map[string]map[string]types.Value, len(doc.Nodes))
	var outputsMu sync.RWMutex
	var hadError atomic.Bool

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))

	for _, layer := range layers {
		if rctx.Cancelled() {
			log.Warn("execution cancelled")
			return nil, CancelledError()
		}

		var wg sync.WaitGroup
		for _, nodeID := range layer {
			node, ok := g.Node(nodeID)
			if !ok {
				continue
			}

			wg.Add(1)
			sem <- struct{}{}
			go func(node types.FlowNode) {
				defer wg.Done()
				defer func() { <-sem }()

				inputs := gatherInputs(g, node.ID, outputs, &outputsMu)

				sink.NodeStarted(observer.NodeStartedEvent{NodeID: node.ID})
				nodeStart := time.Now()

				result, execErr := e.dispatch(rctx, node, inputs)
				duration := time.Since(nodeStart)

				if execErr != nil {
					engErr := NodeExecutionError(node.ID, execErr)
					hadError.Store(true)

					log.WithNodeID(node.ID).WithError(execErr).Warn("node failed")
					sink.NodeError(observer.NodeErrorEvent{NodeID: node.ID, Message: engErr.Error()})

					resultsMu.Lock()
					nodeResults[node.ID] = types.NodeResult{
						Success:    false,
						Error:      engErr.Error(),
						DurationMs: duration.Milliseconds(),
					}
					resultsMu.Unlock()

					outputsMu.Lock()
					outputs[node.ID] = nil
					outputsMu.Unlock()
					return
				}

				preview := previewOf(result)
				log.WithNodeID(node.ID).WithField("duration_ms", duration.Milliseconds()).Debug("node completed")
				sink.NodeCompleted(observer.NodeCompletedEvent{
					NodeID:     node.ID,
					Preview:    preview,
					DurationMs: duration.Milliseconds(),
				})

				resultsMu.Lock()
				nodeResults[node.ID] = types.NodeResult{
					Success:       true,
					OutputPreview: preview,
					DurationMs:    duration.Milliseconds(),
				}
				resultsMu.Unlock()

				outputsMu.Lock()
				outputs[node.ID] = result
				outputsMu.Unlock()
			}(node)
		}
		wg.Wait()
	}

	totalDuration := time.Since(start)
	sink.ExecutionComplete(observer.ExecutionCompleteEvent{TotalDurationMs: totalDuration.Milliseconds()})

	result := &types.ExecutionResult{
		Success:         !hadError.Load(),
		TotalDurationMs: totalDuration.Milliseconds(),
		NodeResults:     nodeResults,
	}
	if hadError.Load() {
		result.Error = "one or more nodes failed"
	}

	log.WithField("duration_ms", totalDuration.Milliseconds()).WithField("success", result.Success).Info("execution complete")
	return result, nil
}

// dispatch routes a single node's execution through the middleware chain
// (if any is installed) and into the registry.
func (e *Engine) dispatch(ctx executor.ExecutionContext, node types.FlowNode, inputs map[string]types.Value) (map[string]types.Value, error) {
	if e.chain.Len() == 0 {
		return e.registry.Execute(ctx, node.Kind, inputs, node.Config)
	}
	handler := func(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
		return e.registry.Execute(ctx, kind, inputs, config)
	}
	return e.chain.Execute(ctx, node.ID, node.Kind, inputs, node.Config, handler)
}

// gatherInputs reads an incoming edges' source outputs for nodeID, resolving
// each edge's source/target handles to their defaults. A source node that
// has not yet produced an output (not executed, or failed) contributes
// Null, never an absent map entry. Edges are walked in document order, so a
// duplicate writer to one target handle is last-write-wins.
func gatherInputs(g *graph.Graph, nodeID string, outputs map[string]map[string]types.Value, mu *sync.RWMutex) map[string]types.Value {
	edges := g.IncomingEdges(nodeID)
	inputs := make(map[string]types.Value, len(edges))

	mu.RLock()
	defer mu.RUnlock()

	for _, edge := range edges {
		value := types.Null
		if out, ok := outputs[edge.Source]; ok && out != nil {
			if v, ok := out[edge.ResolvedSourceHandle()]; ok {
				value = v
			}
		}
		inputs[edge.ResolvedTargetHandle()] = value
	}
	return inputs
}

// previewOf renders a node's output map to a ≤200-char preview: the
// "value" handle when present (textInput and numberInput output under
// that name; the other kinds use handles such as "output" or "result"),
// otherwise the
// lexicographically first handle for determinism, otherwise Null's preview
// for a node with no outputs at all.
func previewOf(result map[string]types.Value) string {
	if len(result) == 0 {
		return types.Null.Preview(200)
	}
	if v, ok := result["value"]; ok {
		return v.Preview(200)
	}
	keys := make([]string, 0, len(result))
	for k := range result {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return result[keys[0]].Preview(200)
}
