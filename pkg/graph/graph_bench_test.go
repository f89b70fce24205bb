package graph

import (
	"fmt"
	"testing"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

func generateLinearChain(size int) types.FlowDocument {
	doc := types.FlowDocument{Nodes: make([]types.FlowNode, size)}
	for i := 0; i < size; i++ {
		doc.Nodes[i] = node(fmt.Sprintf("n%d", i))
		if i > 0 {
			doc.Edges = append(doc.Edges, edge(fmt.Sprintf("n%d", i-1), fmt.Sprintf("n%d", i)))
		}
	}
	return doc
}

func generateWideGraph(size int) types.FlowDocument {
	doc := types.FlowDocument{Nodes: make([]types.FlowNode, size+1)}
	doc.Nodes[0] = node("root")
	for i := 0; i < size; i++ {
		id := fmt.Sprintf("n%d", i)
		doc.Nodes[i+1] = node(id)
		doc.Edges = append(doc.Edges, edge("root", id))
	}
	return doc
}

func BenchmarkLayers_Linear(b *testing.B) {
	for _, size := range []int{10, 100, 1000, 10000} {
		b.Run(fmt.Sprintf("%d_nodes", size), func(b *testing.B) {
			doc := generateLinearChain(size)
			g, err := Build(doc)
			if err != nil {
				b.Fatalf("Build: %v", err)
			}

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := g.Layers(); err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func BenchmarkLayers_Wide(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("%d_nodes", size), func(b *testing.B) {
			doc := generateWideGraph(size)
			g, err := Build(doc)
			if err != nil {
				b.Fatalf("Build: %v", err)
			}

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := g.Layers(); err != nil {
					b.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}
