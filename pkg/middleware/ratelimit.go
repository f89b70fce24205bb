package middleware

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/executor"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// RateLimiter defines the interface for rate limiting implementations
type RateLimiter interface {
	// Allow checks if a request is allowed based on rate limits
	// Returns true if allowed, false if rate limit exceeded
	Allow(key string) bool

	// Reset clears all rate limit state
	Reset()
}

// RateLimitMiddleware enforces rate limits to prevent DoS attacks.
// It uses the token bucket algorithm for smooth rate limiting.
type RateLimitMiddleware struct {
	globalLimiter    RateLimiter
	nodeKindLimiters map[string]RateLimiter
	workflowLimiters map[string]RateLimiter
	mu               sync.RWMutex

	// Configuration
	enableGlobal      bool
	enablePerNodeKind bool
	enablePerWorkflow bool

	// Metrics
	rejectedCount   int64
	rejectedCountMu sync.Mutex
}

// RateLimitConfig configures rate limiting behavior
type RateLimitConfig struct {
	// Global rate limit (requests per second across all nodes)
	GlobalRPS float64

	// Per-node-kind rate limits
	NodeKindRPS map[string]float64

	// Per-workflow rate limit. Not read by the middleware: per-execution
	// buckets are fixed at 10 requests per second (see
	// getOrCreateWorkflowLimiter).
	WorkflowRPS float64

	// Enable flags
	EnableGlobal      bool
	EnablePerNodeKind bool
	EnablePerWorkflow bool
}

// DefaultRateLimitConfig returns default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		GlobalRPS:         100, // 100 requests/sec globally
		WorkflowRPS:       10,  // 10 requests/sec per workflow
		EnableGlobal:      true,
		EnablePerNodeKind: false,
		EnablePerWorkflow: false,
		NodeKindRPS:       make(map[string]float64),
	}
}

// NewRateLimitMiddleware creates a new rate limiting middleware with default config
func NewRateLimitMiddleware() *RateLimitMiddleware {
	return NewRateLimitMiddlewareWithConfig(DefaultRateLimitConfig())
}

// NewRateLimitMiddlewareWithConfig creates a new rate limiting middleware with custom config
func NewRateLimitMiddlewareWithConfig(config RateLimitConfig) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		nodeKindLimiters:  make(map[string]RateLimiter),
		workflowLimiters:  make(map[string]RateLimiter),
		enableGlobal:      config.EnableGlobal,
		enablePerNodeKind: config.EnablePerNodeKind,
		enablePerWorkflow: config.EnablePerWorkflow,
	}

	if config.EnableGlobal && config.GlobalRPS > 0 {
		m.globalLimiter = NewTokenBucket(config.GlobalRPS, int64(config.GlobalRPS))
	}

	if config.EnablePerNodeKind {
		for kind, rps := range config.NodeKindRPS {
			if rps > 0 {
				m.nodeKindLimiters[kind] = NewTokenBucket(rps, int64(rps))
			}
		}
	}

	return m
}

// Process enforces rate limits before node execution
func (m *RateLimitMiddleware) Process(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage, next Handler) (map[string]types.Value, error) {
	if m.enableGlobal && m.globalLimiter != nil {
		if !m.globalLimiter.Allow("global") {
			m.incrementRejected()
			return nil, fmt.Errorf("global rate limit exceeded")
		}
	}

	if m.enablePerNodeKind {
		m.mu.RLock()
		limiter, exists := m.nodeKindLimiters[kind]
		m.mu.RUnlock()

		if exists && !limiter.Allow(kind) {
			m.incrementRejected()
			return nil, fmt.Errorf("rate limit exceeded for node kind: %s", kind)
		}
	}

	if m.enablePerWorkflow {
		executionID := executionIDFromContext(ctx)
		if executionID != "" {
			limiter := m.getOrCreateWorkflowLimiter(executionID)
			if !limiter.Allow(executionID) {
				m.incrementRejected()
				return nil, fmt.Errorf("rate limit exceeded for execution: %s", executionID)
			}
		}
	}

	return next(ctx, nodeID, kind, inputs, config)
}

// Name returns the middleware name
func (m *RateLimitMiddleware) Name() string {
	return "RateLimit"
}

// GetRejectedCount returns the number of rejected requests
func (m *RateLimitMiddleware) GetRejectedCount() int64 {
	m.rejectedCountMu.Lock()
	defer m.rejectedCountMu.Unlock()
	return m.rejectedCount
}

// incrementRejected increments the rejected request counter
func (m *RateLimitMiddleware) incrementRejected() {
	m.rejectedCountMu.Lock()
	m.rejectedCount++
	m.rejectedCountMu.Unlock()
}

// getOrCreateWorkflowLimiter gets or creates a rate limiter for an execution
func (m *RateLimitMiddleware) getOrCreateWorkflowLimiter(executionID string) RateLimiter {
	m.mu.RLock()
	limiter, exists := m.workflowLimiters[executionID]
	m.mu.RUnlock()

	if exists {
		return limiter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, exists = m.workflowLimiters[executionID]
	if exists {
		return limiter
	}

	limiter = NewTokenBucket(10, 10)
	m.workflowLimiters[executionID] = limiter
	return limiter
}

// executionIDFromContext always returns "", so Process applies no
// per-execution limit even when EnablePerWorkflow is set.
func executionIDFromContext(ctx executor.ExecutionContext) string {
	return ""
}

// TokenBucket implements the token bucket algorithm for rate limiting
type TokenBucket struct {
	rate       float64   // tokens per second
	capacity   int64     // maximum tokens
	tokens     float64   // current tokens
	lastRefill time.Time // last refill time
	mu         sync.Mutex
}

// NewTokenBucket creates a new token bucket rate limiter
func NewTokenBucket(rate float64, capacity int64) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow checks if a request is allowed based on available tokens
func (tb *TokenBucket) Allow(key string) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens = min(tb.tokens+elapsed*tb.rate, float64(tb.capacity))
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}

	return false
}

// Reset clears the token bucket state
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = float64(tb.capacity)
	tb.lastRefill = time.Now()
}

// min returns the minimum of two float64 values
func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
