package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/studygen/studygen-api/internal/generation"
)

// ProviderKind identifies which wire format an adapter speaks.
type ProviderKind string

// Supported provider kinds. OpenRouter speaks the OpenAI chat-completions
// format and shares its adapter.
const (
	ProviderGemini     ProviderKind = "gemini"
	ProviderOpenAI     ProviderKind = "openai"
	ProviderOpenRouter ProviderKind = "openrouter"
	ProviderAnthropic  ProviderKind = "anthropic"
)

// GenerateParams carries everything one provider attempt needs.
type GenerateParams struct {
	Credential  string
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Adapter translates between the provider-agnostic generation request and
// one provider's request/response shapes. Implementations are stateless.
type Adapter interface {
	// Name returns the provider name for logging.
	Name() string

	// NewRequest builds the provider-specific HTTP request for one attempt.
	NewRequest(ctx context.Context, endpoint string, params GenerateParams) (*http.Request, error)

	// ExtractContent pulls the generated text out of a 200-status response body.
	ExtractContent(body []byte) (string, error)
}

// NewAdapter returns the adapter for the given provider kind.
func NewAdapter(kind ProviderKind) (Adapter, error) {
	switch kind {
	case ProviderGemini:
		return &geminiAdapter{}, nil
	case ProviderOpenAI, ProviderOpenRouter:
		return &openAIAdapter{name: string(kind)}, nil
	case ProviderAnthropic:
		return &anthropicAdapter{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider kind %q", generation.ErrInvalidConfig, kind)
	}
}
