package middleware

import (
	"encoding/json"
	"fmt"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/executor"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// SizeLimitMiddleware enforces size limits to prevent memory exhaustion
type SizeLimitMiddleware struct {
	maxInputSize      int64 // Maximum size of input data per node (bytes)
	maxResultSize     int64 // Maximum size of result data per node (bytes)
	maxStringLength   int   // Maximum length of string values
	maxArrayLength    int   // Maximum length of arrays
	maxWorkflowSize   int64 // Maximum total workflow size (all nodes + edges)
	maxNodeCount      int   // Maximum number of nodes
	maxEdgeCount      int   // Maximum number of edges
	enforceInputSize  bool  // Whether to enforce input size limits
	enforceResultSize bool  // Whether to enforce result size limits
}

// SizeLimitConfig configures size limit enforcement
type SizeLimitConfig struct {
	// Per-node limits
	MaxInputSize    int64 // Maximum input size per node (default: 10MB)
	MaxResultSize   int64 // Maximum result size per node (default: 50MB)
	MaxStringLength int   // Maximum string length (default: 1MB)
	MaxArrayLength  int   // Maximum array length (default: 10000)

	// Flow limits
	MaxWorkflowSize int64 // Maximum total flow document size (default: 100MB)
	MaxNodeCount    int   // Maximum nodes in flow (default: 1000)
	MaxEdgeCount    int   // Maximum edges in flow (default: 5000)

	// Control flags
	EnforceInputSize  bool // Enforce input size limits (default: true)
	EnforceResultSize bool // Enforce result size limits (default: true)
}

// DefaultSizeLimitConfig returns default size limit configuration
func DefaultSizeLimitConfig() SizeLimitConfig {
	return SizeLimitConfig{
		MaxInputSize:      10 * 1024 * 1024,  // 10 MB
		MaxResultSize:     50 * 1024 * 1024,  // 50 MB
		MaxStringLength:   1 * 1024 * 1024,   // 1 MB
		MaxArrayLength:    10000,             // 10k elements
		MaxWorkflowSize:   100 * 1024 * 1024, // 100 MB
		MaxNodeCount:      1000,              // 1000 nodes
		MaxEdgeCount:      5000,              // 5000 edges
		EnforceInputSize:  true,
		EnforceResultSize: true,
	}
}

// NewSizeLimitMiddleware creates a new size limit middleware with default config
func NewSizeLimitMiddleware() *SizeLimitMiddleware {
	return NewSizeLimitMiddlewareWithConfig(DefaultSizeLimitConfig())
}

// NewSizeLimitMiddlewareWithConfig creates a new size limit middleware with custom config
func NewSizeLimitMiddlewareWithConfig(config SizeLimitConfig) *SizeLimitMiddleware {
	return &SizeLimitMiddleware{
		maxInputSize:      config.MaxInputSize,
		maxResultSize:     config.MaxResultSize,
		maxStringLength:   config.MaxStringLength,
		maxArrayLength:    config.MaxArrayLength,
		maxWorkflowSize:   config.MaxWorkflowSize,
		maxNodeCount:      config.MaxNodeCount,
		maxEdgeCount:      config.MaxEdgeCount,
		enforceInputSize:  config.EnforceInputSize,
		enforceResultSize: config.EnforceResultSize,
	}
}

// Process enforces size limits on inputs and results
func (m *SizeLimitMiddleware) Process(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage, next Handler) (map[string]types.Value, error) {
	if m.enforceInputSize {
		if err := m.validateInputSize(inputs); err != nil {
			return nil, fmt.Errorf("input size limit exceeded: %w", err)
		}
	}

	result, err := next(ctx, nodeID, kind, inputs, config)
	if err != nil {
		return result, err
	}

	if m.enforceResultSize && result != nil {
		if err := m.validateResultSize(result); err != nil {
			return nil, fmt.Errorf("result size limit exceeded: %w", err)
		}
	}

	return result, nil
}

// Name returns the middleware name
func (m *SizeLimitMiddleware) Name() string {
	return "SizeLimit"
}

// validateInputSize validates the size of inputs
func (m *SizeLimitMiddleware) validateInputSize(inputs map[string]types.Value) error {
	for handle, input := range inputs {
		size, err := estimateSize(input)
		if err != nil {
			return fmt.Errorf("failed to estimate size of input %q: %w", handle, err)
		}

		if size > m.maxInputSize {
			return fmt.Errorf("input %q size %d bytes exceeds limit %d bytes", handle, size, m.maxInputSize)
		}

		if err := m.validateValue(input); err != nil {
			return fmt.Errorf("input %q validation failed: %w", handle, err)
		}
	}

	return nil
}

// validateResultSize validates the size of a node's outputs
func (m *SizeLimitMiddleware) validateResultSize(result map[string]types.Value) error {
	size, err := estimateSize(result)
	if err != nil {
		return fmt.Errorf("failed to estimate result size: %w", err)
	}

	if size > m.maxResultSize {
		return fmt.Errorf("result size %d bytes exceeds limit %d bytes", size, m.maxResultSize)
	}

	for handle, v := range result {
		if err := m.validateValue(v); err != nil {
			return fmt.Errorf("output %q: %w", handle, err)
		}
	}

	return nil
}

// validateValue validates type-specific limits, recursing into arrays and
// objects.
func (m *SizeLimitMiddleware) validateValue(v types.Value) error {
	switch v.Kind {
	case types.KindString:
		if m.maxStringLength > 0 && len(v.Str) > m.maxStringLength {
			return fmt.Errorf("string length %d exceeds limit %d", len(v.Str), m.maxStringLength)
		}
	case types.KindArray:
		if m.maxArrayLength > 0 && len(v.Arr) > m.maxArrayLength {
			return fmt.Errorf("array length %d exceeds limit %d", len(v.Arr), m.maxArrayLength)
		}
		for i, elem := range v.Arr {
			if err := m.validateValue(elem); err != nil {
				return fmt.Errorf("array element %d: %w", i, err)
			}
		}
	case types.KindObject:
		for key, val := range v.Obj {
			if err := m.validateValue(val); err != nil {
				return fmt.Errorf("object key %s: %w", key, err)
			}
		}
	}

	return nil
}

// estimateSize estimates the size of a value in bytes using JSON marshaling
// as a rough approximation.
func estimateSize(value interface{}) (int64, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// ValidateFlowSize validates flow document size limits. This should be
// called before execution, not per-node.
func ValidateFlowSize(nodes []types.FlowNode, edges []types.FlowEdge, config SizeLimitConfig) error {
	if config.MaxNodeCount > 0 && len(nodes) > config.MaxNodeCount {
		return fmt.Errorf("flow has %d nodes, exceeds limit of %d", len(nodes), config.MaxNodeCount)
	}

	if config.MaxEdgeCount > 0 && len(edges) > config.MaxEdgeCount {
		return fmt.Errorf("flow has %d edges, exceeds limit of %d", len(edges), config.MaxEdgeCount)
	}

	if config.MaxWorkflowSize > 0 {
		doc := types.FlowDocument{Nodes: nodes, Edges: edges}
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal flow document for size check: %w", err)
		}

		size := int64(len(data))
		if size > config.MaxWorkflowSize {
			return fmt.Errorf("flow document size %d bytes exceeds limit %d bytes", size, config.MaxWorkflowSize)
		}
	}

	return nil
}
