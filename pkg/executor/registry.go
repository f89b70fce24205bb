package executor

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// Registry manages node executor registration and lookup, keyed by kind
// string. Registration is thread-safe; a kind may be registered late (after
// the registry is already in use for other kinds) without any change to
// existing kinds or to the engine.
type Registry struct {
	nodes map[string]Node
	mu    sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]Node)}
}

// Register adds a node implementation to the registry. Returns an error if
// a node is already registered for that kind.
func (r *Registry) Register(node Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kind := node.Kind()
	if _, exists := r.nodes[kind]; exists {
		return fmt.Errorf("executor already registered for kind: %s", kind)
	}
	r.nodes[kind] = node
	return nil
}

// MustRegister registers a node implementation and panics on error. Used at
// init time where registration must succeed.
func (r *Registry) MustRegister(node Node) {
	if err := r.Register(node); err != nil {
		panic(err)
	}
}

// Lookup returns the node implementation registered for kind, and whether
// one was found.
func (r *Registry) Lookup(kind string) (Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[kind]
	return n, ok
}

// Execute dispatches to the node implementation registered for kind.
func (r *Registry) Execute(ctx ExecutionContext, kind string, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	node, ok := r.Lookup(kind)
	if !ok {
		return nil, types.ErrUnknownNodeKind(kind)
	}
	return node.Execute(ctx, inputs, config)
}

// Kinds returns every registered kind, sorted for deterministic catalog
// listings (used by get_node_definitions).
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.nodes))
	for k := range r.nodes {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
