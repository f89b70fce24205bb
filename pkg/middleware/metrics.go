package middleware

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/executor"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// MetricsCollector defines the interface for metrics collection
type MetricsCollector interface {
	RecordNodeExecution(nodeKind string, duration time.Duration, success bool)
	RecordNodeError(nodeKind string, errorType string)
}

// MetricsMiddleware collects execution metrics for nodes.
// It records execution time, success/failure rates, and error types.
type MetricsMiddleware struct {
	collector MetricsCollector
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(collector MetricsCollector) *MetricsMiddleware {
	return &MetricsMiddleware{
		collector: collector,
	}
}

// Process records metrics for node execution
func (m *MetricsMiddleware) Process(ctx executor.ExecutionContext, nodeID, kind string, inputs map[string]types.Value, config json.RawMessage, next Handler) (map[string]types.Value, error) {
	startTime := time.Now()

	result, err := next(ctx, nodeID, kind, inputs, config)

	duration := time.Since(startTime)
	success := err == nil

	if m.collector != nil {
		m.collector.RecordNodeExecution(kind, duration, success)
		if err != nil {
			m.collector.RecordNodeError(kind, err.Error())
		}
	}

	return result, err
}

// Name returns the middleware name
func (m *MetricsMiddleware) Name() string {
	return "Metrics"
}

// InMemoryMetricsCollector is a simple in-memory metrics collector for testing
type InMemoryMetricsCollector struct {
	mu             sync.RWMutex
	executionCount map[string]int64
	successCount   map[string]int64
	failureCount   map[string]int64
	totalDuration  map[string]time.Duration
	errorCount     map[string]int64
}

// NewInMemoryMetricsCollector creates a new in-memory metrics collector
func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return &InMemoryMetricsCollector{
		executionCount: make(map[string]int64),
		successCount:   make(map[string]int64),
		failureCount:   make(map[string]int64),
		totalDuration:  make(map[string]time.Duration),
		errorCount:     make(map[string]int64),
	}
}

// RecordNodeExecution records a node execution
func (c *InMemoryMetricsCollector) RecordNodeExecution(nodeKind string, duration time.Duration, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.executionCount[nodeKind]++
	c.totalDuration[nodeKind] += duration

	if success {
		c.successCount[nodeKind]++
	} else {
		c.failureCount[nodeKind]++
	}
}

// RecordNodeError records a node error
func (c *InMemoryMetricsCollector) RecordNodeError(nodeKind string, errorType string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errorCount[errorType]++
}

// GetExecutionCount returns the total execution count for a node kind
func (c *InMemoryMetricsCollector) GetExecutionCount(nodeKind string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.executionCount[nodeKind]
}

// GetSuccessCount returns the success count for a node kind
func (c *InMemoryMetricsCollector) GetSuccessCount(nodeKind string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.successCount[nodeKind]
}

// GetFailureCount returns the failure count for a node kind
func (c *InMemoryMetricsCollector) GetFailureCount(nodeKind string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.failureCount[nodeKind]
}

// GetAverageDuration returns the average execution duration for a node kind
func (c *InMemoryMetricsCollector) GetAverageDuration(nodeKind string) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := c.executionCount[nodeKind]
	if count == 0 {
		return 0
	}

	return c.totalDuration[nodeKind] / time.Duration(count)
}

// GetErrorCount returns the count for a specific error type
func (c *InMemoryMetricsCollector) GetErrorCount(errorType string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errorCount[errorType]
}

// Reset clears all metrics
func (c *InMemoryMetricsCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.executionCount = make(map[string]int64)
	c.successCount = make(map[string]int64)
	c.failureCount = make(map[string]int64)
	c.totalDuration = make(map[string]time.Duration)
	c.errorCount = make(map[string]int64)
}
