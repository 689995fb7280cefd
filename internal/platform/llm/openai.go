package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/studygen/studygen-api/internal/generation"
)

// openAIAdapter speaks the chat-completions wire format used by OpenAI and
// OpenRouter: bearer-token auth, model in the body, content under
// choices[0].message.content.
type openAIAdapter struct {
	name string
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

func (a *openAIAdapter) Name() string { return a.name }

func (a *openAIAdapter) NewRequest(ctx context.Context, endpoint string, params GenerateParams) (*http.Request, error) {
	body := openAIRequest{
		Model:       params.Model,
		Messages:    []openAIMessage{{Role: "user", Content: params.Prompt}},
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", a.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", a.name, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+params.Credential)
	return req, nil
}

func (a *openAIAdapter) ExtractContent(body []byte) (string, error) {
	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %s response did not decode: %v", generation.ErrMalformedResponse, a.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: %s response contained no choices", generation.ErrMalformedResponse, a.name)
	}

	return resp.Choices[0].Message.Content, nil
}
