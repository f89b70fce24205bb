package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes the structural shape a FlowDocument must have
// before a graph is built from it: unique node ids, a "type" on every
// node, and edges whose "source"/"target" are present. Handle defaulting
// and cross-reference checks (dangling edges, cycles) are the graph
// builder's job; this only catches malformed JSON shape early, with a
// field-level error list instead of a generic unmarshal failure.
const documentSchema = `{
	"type": "object",
	"required": ["name", "nodes", "edges"],
	"properties": {
		"name": {"type": "string"},
		"nodes": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "type"],
				"properties": {
					"id":   {"type": "string", "minLength": 1},
					"type": {"type": "string", "minLength": 1}
				}
			}
		},
		"edges": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["source", "target"],
				"properties": {
					"source": {"type": "string", "minLength": 1},
					"target": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`

var documentSchemaLoader = gojsonschema.NewStringLoader(documentSchema)

// ValidateDocument checks doc against the flow document schema, returning
// a single error describing every violation found. It is a structural
// check only: a document that passes can still fail graph.Build (a
// dangling edge) or Layers (a cycle), and node kinds are not checked
// against the registry.
func ValidateDocument(doc FlowDocument) error {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	result, err := gojsonschema.Validate(documentSchemaLoader, gojsonschema.NewBytesLoader(encoded))
	if err != nil {
		return fmt.Errorf("validate document: %w", err)
	}
	if result.Valid() {
		return dedupeNodeIDs(doc)
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		messages = append(messages, e.String())
	}
	return fmt.Errorf("invalid flow document: %s", strings.Join(messages, "; "))
}

func dedupeNodeIDs(doc FlowDocument) error {
	seen := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if seen[n.ID] {
			return fmt.Errorf("invalid flow document: duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	return nil
}
