package executor

import (
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// TryCatchNode executes the tryCatch node kind as a pass-through
// placeholder. Execute never fails: it passes input through on "success"
// and Null on "error". The engine does not route any node's failure to a
// tryCatch node, so "error" is always Null.
type TryCatchNode struct{}

func (TryCatchNode) Kind() string { return "tryCatch" }

func (TryCatchNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	input := inputOrNull(inputs, "input")
	return map[string]types.Value{"success": input, "error": types.Null}, nil
}
