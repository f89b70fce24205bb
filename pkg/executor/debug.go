package executor

import (
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// DebugNode executes the debug node kind: an inspection point that passes
// its input through unchanged and never fails.
type DebugNode struct{}

func (DebugNode) Kind() string { return "debug" }

func (DebugNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	return map[string]types.Value{"_debug_value": inputOrNull(inputs, "input")}, nil
}
