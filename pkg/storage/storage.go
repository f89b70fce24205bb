package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// FlowMeta is a stored flow document plus its bookkeeping fields.
type FlowMeta struct {
	ID          string
	Name        string
	Description string
	Document    types.FlowDocument
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FlowSummary is a lightweight reference to a stored flow, for listing.
type FlowSummary struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExecutionRecord is one past run of a flow, kept for history browsing.
type ExecutionRecord struct {
	ExecutionID string
	FlowID      string
	Result      types.ExecutionResult
	RanAt       time.Time
}

// Store is the persistence collaborator a host embeds the engine behind:
// saving/loading flow documents, recording execution history, and a
// small key-value settings bag. This package's InMemoryStore is a
// reference implementation for development and testing; a host backing
// it with a real database implements the same interface.
type Store interface {
	SaveFlow(name, description string, doc types.FlowDocument) (string, error)
	LoadFlow(id string) (*FlowMeta, error)
	ListFlows() []FlowSummary
	DeleteFlow(id string) error

	SaveExecution(flowID string, result types.ExecutionResult) (string, error)
	GetExecutionHistory(flowID string, limit int) ([]ExecutionRecord, error)

	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error
}

// InMemoryStore implements Store with no persistence beyond process
// lifetime. Grounded on the same map-plus-mutex shape as every other
// in-memory registry in this codebase (pkg/executor.Registry,
// pkg/middleware's token buckets).
type InMemoryStore struct {
	mu         sync.RWMutex
	flows      map[string]*FlowMeta
	executions map[string][]ExecutionRecord
	settings   map[string]string
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		flows:      make(map[string]*FlowMeta),
		executions: make(map[string][]ExecutionRecord),
		settings:   make(map[string]string),
	}
}

func (s *InMemoryStore) SaveFlow(name, description string, doc types.FlowDocument) (string, error) {
	if name == "" {
		return "", fmt.Errorf("flow name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	now := time.Now()
	s.flows[id] = &FlowMeta{
		ID:          id,
		Name:        name,
		Description: description,
		Document:    doc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return id, nil
}

func (s *InMemoryStore) LoadFlow(id string) (*FlowMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flow, ok := s.flows[id]
	if !ok {
		return nil, fmt.Errorf("flow not found: %s", id)
	}
	cp := *flow
	return &cp, nil
}

func (s *InMemoryStore) ListFlows() []FlowSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]FlowSummary, 0, len(s.flows))
	for _, flow := range s.flows {
		summaries = append(summaries, FlowSummary{
			ID:          flow.ID,
			Name:        flow.Name,
			Description: flow.Description,
			CreatedAt:   flow.CreatedAt,
			UpdatedAt:   flow.UpdatedAt,
		})
	}
	return summaries
}

func (s *InMemoryStore) DeleteFlow(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flows[id]; !ok {
		return fmt.Errorf("flow not found: %s", id)
	}
	delete(s.flows, id)
	delete(s.executions, id)
	return nil
}

func (s *InMemoryStore) SaveExecution(flowID string, result types.ExecutionResult) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.executions[flowID] = append(s.executions[flowID], ExecutionRecord{
		ExecutionID: id,
		FlowID:      flowID,
		Result:      result,
		RanAt:       time.Now(),
	})
	return id, nil
}

func (s *InMemoryStore) GetExecutionHistory(flowID string, limit int) ([]ExecutionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.executions[flowID]
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}
	// Most recent first.
	out := make([]ExecutionRecord, limit)
	for i := 0; i < limit; i++ {
		out[i] = records[len(records)-1-i]
	}
	return out, nil
}

func (s *InMemoryStore) GetSetting(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.settings[key]
	return v, ok, nil
}

func (s *InMemoryStore) SetSetting(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[key] = value
	return nil
}
