package executor

import (
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/expression"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

type mapConfig struct {
	Expression string `json:"expression"`
}

// MapNode executes the map node kind: evaluates config.expression per array
// element with scope {item, index}, collecting the results into a new
// array.
type MapNode struct {
	Eval *expression.Evaluator
}

func (*MapNode) Kind() string { return "map" }

func (n *MapNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	var cfg mapConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Expression == "" {
		cfg.Expression = "item"
	}

	input := inputOrNull(inputs, "input")
	if input.Kind != types.KindArray {
		return nil, ErrNotAnArray
	}

	out := make([]types.Value, len(input.Arr))
	for i, item := range input.Arr {
		scope := map[string]types.Value{"item": item, "index": types.Number(float64(i))}
		result, err := n.Eval.Eval(cfg.Expression, scope)
		if err != nil {
			return nil, err
		}
		out[i] = result
	}

	return map[string]types.Value{"output": types.Array(out)}, nil
}
