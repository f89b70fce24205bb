package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/storage"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/telemetry"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

// SaveFlowRequest is the request body for saving a flow document.
type SaveFlowRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Document    types.FlowDocument `json:"document"`
}

// SaveFlowResponse is the response from saving a flow.
type SaveFlowResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LoadFlowResponse is the response from loading a flow.
type LoadFlowResponse struct {
	Success bool             `json:"success"`
	Flow    *storage.FlowMeta `json:"flow,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// ListFlowsResponse is the response from listing flows.
type ListFlowsResponse struct {
	Success bool                     `json:"success"`
	Flows   []storage.FlowSummary `json:"flows"`
	Count   int                      `json:"count"`
}

// DeleteFlowResponse is the response from deleting a flow.
type DeleteFlowResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleSaveFlow saves a flow document for later reuse by ID.
func (s *Server) handleSaveFlow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}

	var req SaveFlowRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeErrorResponse(w, "Failed to parse request", http.StatusBadRequest, err)
		return
	}

	id, err := s.store.SaveFlow(req.Name, req.Description, req.Document)
	if err != nil {
		s.writeJSONResponse(w, http.StatusBadRequest, SaveFlowResponse{
			Success: false,
			Error:   "Failed to save flow: " + err.Error(),
		})
		return
	}

	s.logger.WithField("id", id).WithField("name", req.Name).Info("flow saved")

	s.writeJSONResponse(w, http.StatusCreated, SaveFlowResponse{
		Success: true,
		ID:      id,
		Message: "flow saved successfully",
	})
}

// handleLoadFlow loads a flow document by ID. Path: /api/v1/flow/load/{id}
func (s *Server) handleLoadFlow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/v1/flow/load/"))
	if id == "" {
		s.writeJSONResponse(w, http.StatusBadRequest, LoadFlowResponse{
			Success: false,
			Error:   "flow id is required",
		})
		return
	}

	flow, err := s.store.LoadFlow(id)
	if err != nil {
		s.writeJSONResponse(w, http.StatusNotFound, LoadFlowResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	s.writeJSONResponse(w, http.StatusOK, LoadFlowResponse{
		Success: true,
		Flow:    flow,
	})
}

// handleListFlows lists every stored flow's summary.
func (s *Server) handleListFlows(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flows := s.store.ListFlows()

	s.writeJSONResponse(w, http.StatusOK, ListFlowsResponse{
		Success: true,
		Flows:   flows,
		Count:   len(flows),
	})
}

// handleDeleteFlow deletes a flow by ID. Path: /api/v1/flow/delete/{id}
func (s *Server) handleDeleteFlow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/v1/flow/delete/"))
	if id == "" {
		s.writeJSONResponse(w, http.StatusBadRequest, DeleteFlowResponse{
			Success: false,
			Error:   "flow id is required",
		})
		return
	}

	if err := s.store.DeleteFlow(id); err != nil {
		s.writeJSONResponse(w, http.StatusNotFound, DeleteFlowResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	s.logger.WithField("id", id).Info("flow deleted")

	s.writeJSONResponse(w, http.StatusOK, DeleteFlowResponse{
		Success: true,
		Message: "flow deleted successfully",
	})
}

// handleExecuteFlowByID runs a previously saved flow by ID. Path:
// /api/v1/flow/execute/{id}
func (s *Server) handleExecuteFlowByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/v1/flow/execute/"))
	if id == "" {
		s.writeErrorResponse(w, "flow id is required", http.StatusBadRequest, nil)
		return
	}

	flow, err := s.store.LoadFlow(id)
	if err != nil {
		s.writeErrorResponse(w, "Failed to load flow", http.StatusNotFound, err)
		return
	}

	runID := uuid.NewString()
	sink := telemetry.NewSpanSink(r.Context(), s.telemetryProvider, runID)

	result, err := s.engine.Execute(r.Context(), flow.Document, sink)
	if err != nil {
		s.writeErrorResponse(w, "Flow execution failed", http.StatusUnprocessableEntity, err)
		return
	}

	if _, err := s.store.SaveExecution(id, *result); err != nil {
		s.logger.WithError(err).Warn("failed to record execution history")
	}

	s.logger.WithField("id", id).WithField("name", flow.Name).Info("flow executed by id")

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":      result.Success,
		"flow_id":      id,
		"flow_name":    flow.Name,
		"execution_id": runID,
		"results":      result,
	})
}
