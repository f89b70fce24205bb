package executor

import (
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/expression"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

type conditionalConfig struct {
	Expression string `json:"expression"`
}

// ConditionalNode executes the conditional node kind: routes its input to
// one of two handles, "true" or "false", the other receiving Null.
//
// The boolean is chosen with this priority:
//  1. an explicit "condition" input, projected to bool
//  2. config.expression, evaluated with scope {input}
//  3. the truthy projection of "input" itself
type ConditionalNode struct {
	Eval *expression.Evaluator
}

func (*ConditionalNode) Kind() string { return "conditional" }

func (n *ConditionalNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	var cfg conditionalConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}

	input := inputOrNull(inputs, "input")

	var branch bool
	switch {
	case hasHandle(inputs, "condition"):
		branch, _ = inputs["condition"].AsBool()
	case cfg.Expression != "":
		result, err := n.Eval.Eval(cfg.Expression, map[string]types.Value{"input": input})
		if err != nil {
			return nil, err
		}
		branch, _ = result.AsBool()
	default:
		branch, _ = input.AsBool()
	}

	if branch {
		return map[string]types.Value{"true": input, "false": types.Null}, nil
	}
	return map[string]types.Value{"true": types.Null, "false": input}, nil
}

