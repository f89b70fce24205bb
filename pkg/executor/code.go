package executor

import (
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/expression"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

type codeConfig struct {
	Code string `json:"code"`
}

// CodeNode executes the code node kind: runs user-supplied code through the
// sandboxed evaluator with "input" bound in scope, and returns its result as
// "output".
type CodeNode struct {
	Eval *expression.Evaluator
}

func (*CodeNode) Kind() string { return "code" }

func (n *CodeNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	var cfg codeConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Code == "" {
		return nil, ErrEmptyCode
	}

	input := inputOrNull(inputs, "input")
	result, err := n.Eval.Eval(cfg.Code, map[string]types.Value{"input": input})
	if err != nil {
		return nil, err
	}
	return map[string]types.Value{"output": result}, nil
}
