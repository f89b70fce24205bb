package engine

import (
	"github.com/yesoreyeram/thaiyyal/backend/pkg/executor"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/expression"
)

// DefaultRegistry builds the registry of the built-in node catalog: the 19
// kinds implemented in pkg/executor. The four expression-backed kinds
// (code, conditional, filter, map) share a single compiled-program cache.
func DefaultRegistry() *executor.Registry {
	registry := executor.NewRegistry()
	eval := expression.New()

	nodes := []executor.Node{
		&executor.CodeNode{Eval: eval},
		&executor.ConditionalNode{Eval: eval},
		&executor.FilterNode{Eval: eval},
		&executor.MapNode{Eval: eval},

		executor.TextInputNode{},
		executor.NumberInputNode{},
		executor.FileReadNode{},
		executor.JSONParseNode{},

		executor.DebugNode{},
		executor.MergeNode{},
		executor.RegexNode{},
		executor.SplitNode{},
		executor.TextTemplateNode{},
		executor.TryCatchNode{},
		executor.ForEachNode{},
		executor.FileWriteNode{},
		executor.NewHTTPNode(),

		executor.LLMPromptNode{},
		executor.LLMChatNode{},
	}

	for _, node := range nodes {
		registry.MustRegister(node)
	}
	return registry
}
