package executor

import (
	"encoding/json"
	"strings"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

type splitConfig struct {
	Delimiter string `json:"delimiter"`
}

// SplitNode executes the split node kind: splits a string input on a
// delimiter and trims each resulting part.
type SplitNode struct{}

func (SplitNode) Kind() string { return "split" }

func (SplitNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	var cfg splitConfig
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = ","
	}

	in := inputOrNull(inputs, "input")
	s, _ := in.AsString()

	parts := strings.Split(s, cfg.Delimiter)
	out := make([]types.Value, len(parts))
	for i, p := range parts {
		out[i] = types.String(strings.TrimSpace(p))
	}

	return map[string]types.Value{"output": types.Array(out)}, nil
}
