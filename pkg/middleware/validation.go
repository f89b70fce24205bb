package middleware

import (
	"encoding/json"
	"fmt"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/executor"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// ValidationMiddleware validates that a node kind is registered before
// execution, catching a flow document that references an unknown kind
// before the engine attributes a confusing failure to it.
type ValidationMiddleware struct {
	registry *executor.Registry
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware(registry *executor.Registry) *ValidationMiddleware {
	return &ValidationMiddleware{
		registry: registry,
	}
}

// Process validates node before execution
func (m *ValidationMiddleware) Process(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage, next Handler) (map[string]types.Value, error) {
	if m.registry != nil {
		if _, ok := m.registry.Lookup(kind); !ok {
			return nil, fmt.Errorf("node validation failed: unknown node kind %q", kind)
		}
	}

	return next(ctx, nodeID, kind, inputs, config)
}

// Name returns the middleware name
func (m *ValidationMiddleware) Name() string {
	return "Validation"
}

// InputValidationMiddleware validates node inputs before execution
type InputValidationMiddleware struct {
	maxInputSize int64 // Maximum size for string input data in bytes
}

// NewInputValidationMiddleware creates a new input validation middleware
func NewInputValidationMiddleware(maxInputSize int64) *InputValidationMiddleware {
	return &InputValidationMiddleware{
		maxInputSize: maxInputSize,
	}
}

// Process validates inputs before execution
func (m *InputValidationMiddleware) Process(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage, next Handler) (map[string]types.Value, error) {
	if len(inputs) > 100 {
		return nil, fmt.Errorf("too many inputs: %d (max 100)", len(inputs))
	}

	for handle, input := range inputs {
		if s, ok := input.AsString(); ok && input.Kind == types.KindString {
			if m.maxInputSize > 0 && int64(len(s)) > m.maxInputSize {
				return nil, fmt.Errorf("input %q too large: %d bytes (max %d)", handle, len(s), m.maxInputSize)
			}
		}
	}

	return next(ctx, nodeID, kind, inputs, config)
}

// Name returns the middleware name
func (m *InputValidationMiddleware) Name() string {
	return "InputValidation"
}
