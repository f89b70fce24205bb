// Package ollama implements the LLM collaborator the llmPrompt and llmChat
// node kinds call through executor.LLMClient, talking to a local or remote
// Ollama-compatible HTTP API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/executor"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/httpclient"
	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

const defaultBaseURL = "http://localhost:11434"

// Client is an Ollama API client satisfying executor.LLMClient.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client through httpclient.Builder, which gives it a pooled
// transport and checks redirect targets against cfg's SSRF settings
// (AllowLocalhost, AllowPrivateIPs, AllowedDomains, ...). The base URL
// itself, localhost by default, is not checked.
func New(baseURL string, cfg types.Config) (*Client, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	built, err := httpclient.NewBuilder(cfg).Build(&httpclient.ClientConfig{
		Name:    "ollama",
		Timeout: 120 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama error: building client: %w", err)
	}

	return &Client{baseURL: baseURL, http: built.Client}, nil
}

type generateRequest struct {
	Model   string               `json:"model"`
	Prompt  string               `json:"prompt"`
	System  string               `json:"system,omitempty"`
	Stream  bool                 `json:"stream"`
	Options generateRequestOpts  `json:"options"`
}

type generateRequestOpts struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate calls the /api/generate endpoint for a single-shot completion.
func (c *Client) Generate(ctx context.Context, model, prompt, system string, temperature float64) (string, error) {
	body := generateRequest{
		Model:   model,
		Prompt:  prompt,
		System:  system,
		Stream:  false,
		Options: generateRequestOpts{Temperature: temperature},
	}

	var resp generateResponse
	if err := c.post(ctx, "/api/generate", body, &resp); err != nil {
		return "", err
	}
	if resp.Response == "" {
		return "", fmt.Errorf("ollama error: no response field in output")
	}
	return resp.Response, nil
}

type chatRequest struct {
	Model   string              `json:"model"`
	Messages []executor.ChatMessage `json:"messages"`
	Stream  bool                `json:"stream"`
	Options generateRequestOpts `json:"options"`
}

type chatResponse struct {
	Message executor.ChatMessage `json:"message"`
}

// Chat calls the /api/chat endpoint with the full message history.
func (c *Client) Chat(ctx context.Context, model string, messages []executor.ChatMessage, temperature float64) (string, error) {
	body := chatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
		Options:  generateRequestOpts{Temperature: temperature},
	}

	var resp chatResponse
	if err := c.post(ctx, "/api/chat", body, &resp); err != nil {
		return "", err
	}
	if resp.Message.Content == "" {
		return "", fmt.Errorf("ollama error: no message content in response")
	}
	return resp.Message.Content, nil
}

// modelsResponse is the /api/tags response shape.
type modelsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// ListModels returns the names of models currently pulled on the server.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	var resp modelsResponse
	if err := c.get(ctx, "/api/tags", &resp); err != nil {
		return nil, err
	}
	names := make([]string, len(resp.Models))
	for i, m := range resp.Models {
		names[i] = m.Name
	}
	return names, nil
}

// CheckHealth reports whether the server is reachable and responding, by
// hitting the same endpoint ListModels uses. Ollama has no dedicated health
// endpoint; a successful /api/tags is the documented liveness signal.
func (c *Client) CheckHealth(ctx context.Context) error {
	var resp modelsResponse
	return c.get(ctx, "/api/tags", &resp)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("ollama error: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ollama error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return fmt.Errorf("ollama error: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ollama error: ollama returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("ollama error: invalid response: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("ollama error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("ollama error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ollama error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return fmt.Errorf("ollama error: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ollama error: ollama returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("ollama error: invalid response: %w", err)
	}
	return nil
}
