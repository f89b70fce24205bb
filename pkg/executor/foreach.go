package executor

import (
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// ForEachNode executes the forEach node kind as a pass-through placeholder:
// Execute validates that "array" is an array and returns it unchanged on
// "results". Neither this node nor the engine iterates over the elements or
// runs any downstream subgraph once per element.
type ForEachNode struct{}

func (ForEachNode) Kind() string { return "forEach" }

func (ForEachNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	input := inputOrNull(inputs, "array")
	if input.Kind != types.KindArray {
		return nil, ErrNotAnArray
	}
	return map[string]types.Value{"results": input}, nil
}
