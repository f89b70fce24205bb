package executor

import (
	"encoding/json"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// MergeNode executes the merge node kind: concatenates "a" and "b" when
// both are arrays, otherwise produces the two-element array [a, b].
type MergeNode struct{}

func (MergeNode) Kind() string { return "merge" }

func (MergeNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	a := inputOrNull(inputs, "a")
	b := inputOrNull(inputs, "b")

	if a.Kind == types.KindArray && b.Kind == types.KindArray {
		out := make([]types.Value, 0, len(a.Arr)+len(b.Arr))
		out = append(out, a.Arr...)
		out = append(out, b.Arr...)
		return map[string]types.Value{"output": types.Array(out)}, nil
	}

	return map[string]types.Value{"output": types.Array([]types.Value{a, b})}, nil
}
