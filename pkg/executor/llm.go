package executor

import (
	"encoding/json"
	"fmt"

	"github.com/yesoreyeram/thaiyyal/backend/pkg/types"
)

type llmPromptConfig struct {
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	SystemPrompt string  `json:"systemPrompt"`
}

// LLMPromptNode executes the llmPrompt node kind: a single-shot call to the
// configured LLM collaborator.
type LLMPromptNode struct{}

func (LLMPromptNode) Kind() string { return "llmPrompt" }

func (LLMPromptNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	cfg := llmPromptConfig{Model: "llama3.2", Temperature: 0.7}
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}

	llm := ctx.LLM()
	if llm == nil {
		return nil, fmt.Errorf("ollama error: no LLM collaborator configured")
	}

	prompt, _ := inputOrNull(inputs, "prompt").AsString()

	response, err := llm.Generate(ctx.Context(), cfg.Model, prompt, cfg.SystemPrompt, cfg.Temperature)
	if err != nil {
		return nil, fmt.Errorf("ollama error: %v", err)
	}

	return map[string]types.Value{"response": types.String(response)}, nil
}

type llmChatConfig struct {
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	SystemPrompt string  `json:"systemPrompt"`
}

// LLMChatNode executes the llmChat node kind: composes a message list from
// an optional system prompt, prior history, and the new user message, calls
// the LLM collaborator's chat method, and appends the assistant's reply to
// the returned history.
type LLMChatNode struct{}

func (LLMChatNode) Kind() string { return "llmChat" }

func (LLMChatNode) Execute(ctx ExecutionContext, inputs map[string]types.Value, config json.RawMessage) (map[string]types.Value, error) {
	cfg := llmChatConfig{Model: "llama3.2", Temperature: 0.7}
	if len(config) > 0 {
		if err := json.Unmarshal(config, &cfg); err != nil {
			return nil, err
		}
	}

	llm := ctx.LLM()
	if llm == nil {
		return nil, fmt.Errorf("ollama error: no LLM collaborator configured")
	}

	message, _ := inputOrNull(inputs, "message").AsString()

	var messages []ChatMessage
	if cfg.SystemPrompt != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: cfg.SystemPrompt})
	}

	history := inputOrNull(inputs, "history")
	if history.Kind == types.KindArray {
		for _, turn := range history.Arr {
			if turn.Kind != types.KindObject {
				continue
			}
			role, _ := turn.Obj["role"].AsString()
			content, _ := turn.Obj["content"].AsString()
			messages = append(messages, ChatMessage{Role: role, Content: content})
		}
	}

	messages = append(messages, ChatMessage{Role: "user", Content: message})

	response, err := llm.Chat(ctx.Context(), cfg.Model, messages, cfg.Temperature)
	if err != nil {
		return nil, fmt.Errorf("ollama error: %v", err)
	}

	newHistory := make([]types.Value, 0, len(messages)+1)
	for _, m := range messages {
		if m.Role == "system" {
			continue
		}
		newHistory = append(newHistory, types.Object(map[string]types.Value{
			"role":    types.String(m.Role),
			"content": types.String(m.Content),
		}))
	}
	newHistory = append(newHistory, types.Object(map[string]types.Value{
		"role":    types.String("assistant"),
		"content": types.String(response),
	}))

	return map[string]types.Value{
		"response": types.String(response),
		"history":  types.Array(newHistory),
	}, nil
}
