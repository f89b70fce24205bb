package executor

import "github.com/yesoreyeram/thaiyyal/backend/pkg/expression"

// RegisterBuiltins registers every node kind this package ships against reg.
// The code, conditional, filter, and map kinds share a single evaluator
// instance purely to share its compiled-program cache; Eval itself keeps no
// state between calls.
func RegisterBuiltins(reg *Registry) {
	eval := expression.New()

	reg.MustRegister(TextInputNode{})
	reg.MustRegister(NumberInputNode{})
	reg.MustRegister(FileReadNode{})
	reg.MustRegister(NewHTTPNode())

	reg.MustRegister(TextTemplateNode{})
	reg.MustRegister(JSONParseNode{})
	reg.MustRegister(RegexNode{})
	reg.MustRegister(&FilterNode{Eval: eval})
	reg.MustRegister(&MapNode{Eval: eval})
	reg.MustRegister(MergeNode{})
	reg.MustRegister(SplitNode{})

	reg.MustRegister(DebugNode{})
	reg.MustRegister(FileWriteNode{})

	reg.MustRegister(&ConditionalNode{Eval: eval})
	reg.MustRegister(&CodeNode{Eval: eval})
	reg.MustRegister(TryCatchNode{})
	reg.MustRegister(ForEachNode{})

	reg.MustRegister(LLMPromptNode{})
	reg.MustRegister(LLMChatNode{})
}
