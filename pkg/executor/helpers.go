package executor

import "github.com/yesoreyeram/thaiyyal/backend/pkg/types"

// inputOrNull returns the Value gathered for handle, or types.Null if the
// engine did not populate it. It does not distinguish an absent handle from
// one explicitly connected to a Null-valued upstream output; both read as
// Null. Use hasHandle where that difference matters.
func inputOrNull(inputs map[string]types.Value, handle string) types.Value {
	if v, ok := inputs[handle]; ok {
		return v
	}
	return types.Null
}

// hasHandle reports whether handle was explicitly gathered by the engine,
// regardless of whether its value is Null. Used where "was this edge
// connected" and "is the value non-null" are different questions — a node
// kind's input-priority order must key off the former.
func hasHandle(inputs map[string]types.Value, handle string) bool {
	_, ok := inputs[handle]
	return ok
}
