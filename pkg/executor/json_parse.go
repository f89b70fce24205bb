package executor

import (
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// JSONParseNode executes the jsonParse node kind: parses a string input as
// JSON, recursively lifting objects and arrays into the Value model the
// same way a flow document's own config fields decode.
type JSONParseNode struct{}

func (JSONParseNode) Kind() string { return "jsonParse" }

func (JSONParseNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	input := inputOrNull(inputs, "input")
	s, ok := input.AsString()
	if !ok {
		return nil, ErrInvalidInputValue
	}

	var out types.Value
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return map[string]types.Value{"output": out}, nil
}
