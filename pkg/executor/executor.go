// Package executor provides the Strategy Pattern implementation for node
// execution: a registry of executor strategies keyed by node kind, replacing
// what would otherwise be a large switch statement.
package executor

import (
	"context"
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// ExecutionContext is the narrow view of a run a node implementation is
// given. It breaks the dependency cycle between executor and engine: nodes
// depend on this interface, the engine implements it.
type ExecutionContext interface {
	// Context is the run's context.Context, carrying the execution ID and
	// cancellation/deadline state.
	Context() context.Context

	// Cancelled reports whether the run has been cancelled. Long-running
	// nodes should poll this between chunks of work where practical.
	Cancelled() bool

	// Config returns the resource limits and security policy in effect.
	Config() types.Config

	// LLM returns the collaborator used by the llmPrompt/llmChat node
	// kinds. It is nil if no LLM backend was configured, in which case
	// those two kinds fail with an "ollama error: ..." message.
	LLM() LLMClient
}

// LLMClient is the narrow interface the AI node kinds depend on. A concrete
// Ollama-API-compatible implementation lives in package ollama.
type LLMClient interface {
	Generate(ctx context.Context, model, prompt, system string, temperature float64) (string, error)
	Chat(ctx context.Context, model string, messages []ChatMessage, temperature float64) (string, error)
}

// ChatMessage is one turn in an llmChat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Node is the uniform contract every node kind implements: a static kind
// string plus an Execute method. Adding a kind never requires changing an
// existing kind or the engine — only a new registration.
type Node interface {
	// Kind returns the static string this implementation registers under.
	Kind() string

	// Execute runs the node against its gathered inputs (keyed by input
	// handle) and its raw config, and returns its outputs (keyed by
	// output handle). A missing upstream value arrives as types.Null, not
	// as an absent map entry. Execute may fail; it need not attribute the
	// error to its own node ID — the engine attaches the ID of the node it
	// dispatched to every error Execute returns.
	Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error)
}
