package executor

import (
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/expression"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

type filterConfig struct {
	Condition string `json:"condition"`
}

// FilterNode executes the filter node kind: evaluates config.condition per
// array element with scope {item, index} and keeps only elements for which
// the result is strictly boolean true. A truthy-but-non-boolean result
// (e.g. a non-empty string) is not kept.
type FilterNode struct {
	Eval *expression.Evaluator
}

func (*FilterNode) Kind() string { return "filter" }

func (n *FilterNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	var cfg filterConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Condition == "" {
		cfg.Condition = "item !== null"
	}

	input := inputOrNull(inputs, "input")
	if input.Kind != types.KindArray {
		return nil, ErrNotAnArray
	}

	out := make([]types.Value, 0, len(input.Arr))
	for i, item := range input.Arr {
		scope := map[string]types.Value{"item": item, "index": types.Number(float64(i))}
		result, err := n.Eval.Eval(cfg.Condition, scope)
		if err != nil {
			return nil, err
		}
		if result.Kind == types.KindBoolean && result.Bool {
			out = append(out, item)
		}
	}

	return map[string]types.Value{"output": types.Array(out)}, nil
}
