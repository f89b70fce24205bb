package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/observer"
)

// SpanSink implements observer.EventSink and records a trace span plus
// metrics for each node, and an aggregate metric for the run as a whole.
// There is no dedicated "execution started" event in the observer wire
// protocol, so the root span opens lazily on the first NodeStarted it
// sees and closes on ExecutionComplete.
type SpanSink struct {
	ctx      context.Context
	provider *Provider
	runID    string

	mu            sync.Mutex
	rootSpan      trace.Span
	rootStart     time.Time
	nodeSpans     map[string]trace.Span
	nodeStartedAt map[string]time.Time
	nodesExecuted int
	anyFailure    bool
}

// NewSpanSink creates a sink that records spans and metrics for the run
// identified by runID. ctx is the base context spans are rooted under.
func NewSpanSink(ctx context.Context, provider *Provider, runID string) *SpanSink {
	return &SpanSink{
		ctx:           ctx,
		provider:      provider,
		runID:         runID,
		nodeSpans:     make(map[string]trace.Span),
		nodeStartedAt: make(map[string]time.Time),
	}
}

func (s *SpanSink) ensureRootSpan() {
	if s.rootSpan != nil {
		return
	}
	s.rootStart = time.Now()
	_, span := s.provider.Tracer().Start(s.ctx, "flow.execute",
		trace.WithAttributes(attribute.String("execution.id", s.runID)),
	)
	s.rootSpan = span
}

func (s *SpanSink) NodeStarted(e observer.NodeStartedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureRootSpan()
	spanCtx := trace.ContextWithSpan(s.ctx, s.rootSpan)
	_, span := s.provider.Tracer().Start(spanCtx, "node.execute",
		trace.WithAttributes(
			attribute.String("node.id", e.NodeID),
			attribute.String("execution.id", s.runID),
		),
	)
	s.nodeSpans[e.NodeID] = span
	s.nodeStartedAt[e.NodeID] = time.Now()
}

func (s *SpanSink) NodeCompleted(e observer.NodeCompletedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishNode(e.NodeID, nil)
}

func (s *SpanSink) NodeError(e observer.NodeErrorEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anyFailure = true
	s.finishNode(e.NodeID, errMessage(e.Message))
}

// finishNode must be called with s.mu held.
func (s *SpanSink) finishNode(nodeID string, err error) {
	start, ok := s.nodeStartedAt[nodeID]
	var duration time.Duration
	if ok {
		duration = time.Since(start)
		delete(s.nodeStartedAt, nodeID)
	}
	s.nodesExecuted++

	span, ok := s.nodeSpans[nodeID]
	if ok {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "node completed")
		}
		span.End()
		delete(s.nodeSpans, nodeID)
	}

	s.provider.RecordNodeExecution(s.ctx, nodeID, "", duration, err == nil)
}

func (s *SpanSink) ExecutionComplete(e observer.ExecutionCompleteEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureRootSpan()
	duration := time.Since(s.rootStart)
	s.provider.RecordWorkflowExecution(s.ctx, s.runID, duration, !s.anyFailure, s.nodesExecuted)

	if s.anyFailure {
		s.rootSpan.SetStatus(codes.Error, "one or more nodes failed")
	} else {
		s.rootSpan.SetStatus(codes.Ok, "execution completed")
	}
	s.rootSpan.End()
}

type errMessage string

func (e errMessage) Error() string { return string(e) }
