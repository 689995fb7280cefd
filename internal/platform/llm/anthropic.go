package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/studygen/studygen-api/internal/generation"
)

// anthropicVersion pins the Messages API revision.
const anthropicVersion = "2023-06-01"

// anthropicAdapter speaks the Anthropic Messages wire format: credential in
// the x-api-key header, a pinned anthropic-version header, content under
// content[0].text.
type anthropicAdapter struct{}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (a *anthropicAdapter) Name() string { return "anthropic" }

func (a *anthropicAdapter) NewRequest(ctx context.Context, endpoint string, params GenerateParams) (*http.Request, error) {
	body := anthropicRequest{
		Model:     params.Model,
		MaxTokens: params.MaxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: params.Prompt}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal anthropic request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build anthropic request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", params.Credential)
	req.Header.Set("anthropic-version", anthropicVersion)
	return req, nil
}

func (a *anthropicAdapter) ExtractContent(body []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: anthropic response did not decode: %v", generation.ErrMalformedResponse, err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("%w: anthropic response contained no content blocks", generation.ErrMalformedResponse)
	}

	return resp.Content[0].Text, nil
}
