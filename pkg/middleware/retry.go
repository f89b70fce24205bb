package middleware

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/executor"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// RetryMiddleware automatically retries failed node executions.
// It implements exponential backoff between retry attempts.
type RetryMiddleware struct {
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	backoffFactor  float64
}

// RetryConfig configures retry behavior
type RetryConfig struct {
	MaxRetries     int           // Maximum number of retry attempts
	InitialBackoff time.Duration // Initial backoff duration
	MaxBackoff     time.Duration // Maximum backoff duration
	BackoffFactor  float64       // Backoff multiplier (e.g., 2.0 for exponential)
}

// DefaultRetryConfig returns default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		BackoffFactor:  2.0,
	}
}

// NewRetryMiddleware creates a new retry middleware with default config
func NewRetryMiddleware() *RetryMiddleware {
	config := DefaultRetryConfig()
	return &RetryMiddleware{
		maxRetries:     config.MaxRetries,
		initialBackoff: config.InitialBackoff,
		maxBackoff:     config.MaxBackoff,
		backoffFactor:  config.BackoffFactor,
	}
}

// NewRetryMiddlewareWithConfig creates a new retry middleware with custom config
func NewRetryMiddlewareWithConfig(config RetryConfig) *RetryMiddleware {
	return &RetryMiddleware{
		maxRetries:     config.MaxRetries,
		initialBackoff: config.InitialBackoff,
		maxBackoff:     config.MaxBackoff,
		backoffFactor:  config.BackoffFactor,
	}
}

// Process retries failed executions with exponential backoff
func (m *RetryMiddleware) Process(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage, next Handler) (map[string]types.Value, error) {
	var lastErr error
	backoff := m.initialBackoff

	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		result, err := next(ctx, nodeID, kind, inputs, config)

		if err == nil {
			return result, nil
		}

		lastErr = err

		if attempt == m.maxRetries {
			break
		}

		if backoff > 0 {
			time.Sleep(backoff)
			backoff = time.Duration(float64(backoff) * m.backoffFactor)
			if backoff > m.maxBackoff {
				backoff = m.maxBackoff
			}
		}
	}

	return nil, fmt.Errorf("node execution failed after %d retries: %w", m.maxRetries, lastErr)
}

// Name returns the middleware name
func (m *RetryMiddleware) Name() string {
	return "Retry"
}

// ConditionalRetryMiddleware retries only for specific error types
type ConditionalRetryMiddleware struct {
	maxRetries      int
	initialBackoff  time.Duration
	maxBackoff      time.Duration
	backoffFactor   float64
	retryableErrors []string // List of error message substrings that should trigger retry
}

// NewConditionalRetryMiddleware creates a retry middleware for specific errors
func NewConditionalRetryMiddleware(retryableErrors []string) *ConditionalRetryMiddleware {
	config := DefaultRetryConfig()
	return &ConditionalRetryMiddleware{
		maxRetries:      config.MaxRetries,
		initialBackoff:  config.InitialBackoff,
		maxBackoff:      config.MaxBackoff,
		backoffFactor:   config.BackoffFactor,
		retryableErrors: retryableErrors,
	}
}

// Process retries only for specific error types
func (m *ConditionalRetryMiddleware) Process(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage, next Handler) (map[string]types.Value, error) {
	var lastErr error
	backoff := m.initialBackoff

	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		result, err := next(ctx, nodeID, kind, inputs, config)

		if err == nil {
			return result, nil
		}

		lastErr = err

		if !m.isRetryable(err) {
			return nil, err
		}

		if attempt == m.maxRetries {
			break
		}

		if backoff > 0 {
			time.Sleep(backoff)
			backoff = time.Duration(float64(backoff) * m.backoffFactor)
			if backoff > m.maxBackoff {
				backoff = m.maxBackoff
			}
		}
	}

	return nil, fmt.Errorf("node execution failed after %d retries: %w", m.maxRetries, lastErr)
}

// isRetryable checks if an error should trigger a retry
func (m *ConditionalRetryMiddleware) isRetryable(err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()
	for _, retryableErr := range m.retryableErrors {
		if strings.Contains(errMsg, retryableErr) {
			return true
		}
	}

	return false
}

// Name returns the middleware name
func (m *ConditionalRetryMiddleware) Name() string {
	return "ConditionalRetry"
}
