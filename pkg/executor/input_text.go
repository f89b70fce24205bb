package executor

import (
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

type textInputConfig struct {
	Value string `json:"value"`
}

// TextInputNode executes the textInput node kind: a literal string constant.
type TextInputNode struct{}

func (TextInputNode) Kind() string { return "textInput" }

func (TextInputNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	var cfg textInputConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}
	return map[string]types.Value{"value": types.String(cfg.Value)}, nil
}
