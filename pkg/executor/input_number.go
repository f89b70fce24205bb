package executor

import (
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

type numberInputConfig struct {
	Value float64 `json:"value"`
}

// NumberInputNode executes the numberInput node kind: a literal numeric
// constant.
type NumberInputNode struct{}

func (NumberInputNode) Kind() string { return "numberInput" }

func (NumberInputNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	var cfg numberInputConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}
	return map[string]types.Value{"value": types.Number(cfg.Value)}, nil
}
