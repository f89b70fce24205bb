// Package graph builds an indexed graph from a flow document, validates
// it, and computes the layered execution schedule the engine walks.
package graph

import (
	"fmt"
	"sort"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// Graph is the indexed, validated form of a types.FlowDocument: node
// lookup by id and edge lookup by endpoint are both O(1)/O(incoming-count),
// per the scheduler's edge-lookup contract.
type Graph struct {
	order    []string // document order, used as the layering tie-break
	nodes    map[string]types.FlowNode
	incoming map[string][]types.FlowEdge
	outgoing map[string][]string
}

// Build indexes doc and validates that every edge endpoint resolves to a
// node that exists. It does not check for cycles — call Layers for that.
func Build(doc types.FlowDocument) (*Graph, error) {
	g := &Graph{
		order:    make([]string, 0, len(doc.Nodes)),
		nodes:    make(map[string]types.FlowNode, len(doc.Nodes)),
		incoming: make(map[string][]types.FlowEdge),
		outgoing: make(map[string][]string),
	}

	for _, n := range doc.Nodes {
		if _, exists := g.nodes[n.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}

	for _, e := range doc.Edges {
		if _, ok := g.nodes[e.Source]; !ok {
			return nil, fmt.Errorf("%w: source node %s not found", ErrDanglingEdge, e.Source)
		}
		if _, ok := g.nodes[e.Target]; !ok {
			return nil, fmt.Errorf("%w: target node %s not found", ErrDanglingEdge, e.Target)
		}
		g.incoming[e.Target] = append(g.incoming[e.Target], e)
		g.outgoing[e.Source] = append(g.outgoing[e.Source], e.Target)
	}

	return g, nil
}

// Node returns the node registered under id.
func (g *Graph) Node(id string) (types.FlowNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// IncomingEdges returns every edge targeting nodeID, in document order.
func (g *Graph) IncomingEdges(nodeID string) []types.FlowEdge {
	return g.incoming[nodeID]
}

// Layers computes the depth-based execution layering: depth(n) = 0 for a
// node with no incoming edges, else 1 + max(depth(p)) over its direct
// predecessors p. Layer k holds every node at depth k. Nodes within a
// layer are mutually independent (no edge runs within a layer) and are
// ordered by first appearance in the document for deterministic output.
//
// Returns ErrCycle if the node set contains a cycle; a cyclic subgraph has
// no finite depth assignment, detected here via Kahn's algorithm leaving
// nodes unprocessed.
func (g *Graph) Layers() ([][]string, error) {
	inDegree := make(map[string]int, len(g.nodes))
	for id := range g.nodes {
		inDegree[id] = 0
	}
	for target, edges := range g.incoming {
		inDegree[target] = len(edges)
	}

	depth := make(map[string]int, len(g.nodes))
	queue := make([]string, 0, len(g.nodes))
	for _, id := range g.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
			depth[id] = 0
		}
	}

	processed := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		processed++

		for _, next := range g.outgoing[current] {
			if depth[next] < depth[current]+1 {
				depth[next] = depth[current] + 1
			}
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if processed != len(g.nodes) {
		return nil, ErrCycle
	}

	maxDepth := 0
	for _, d := range depth {
		if d > maxDepth {
			maxDepth = d
		}
	}

	layers := make([][]string, maxDepth+1)
	for _, id := range g.order {
		d := depth[id]
		layers[d] = append(layers[d], id)
	}
	return layers, nil
}

// Sorted returns every node id in lexicographic order, for catalog-style
// listings that want a stable iteration order without layering.
func (g *Graph) Sorted() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	sort.Strings(out)
	return out
}
