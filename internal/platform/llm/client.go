package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/studygen/studygen-api/internal/generation"
	"github.com/studygen/studygen-api/internal/redact"
)

// Limits applied to every provider attempt.
const (
	// DefaultTimeout bounds one HTTP exchange with a provider.
	DefaultTimeout = 60 * time.Second

	// minContentLength is the shortest 200-status content accepted as usable.
	// Anything shorter is treated as malformed and the next candidate is tried.
	minContentLength = 20

	// maxResponseBytes bounds how much of a provider response body is read.
	maxResponseBytes = 4 << 20

	// errorSnippetLength bounds how much of a provider error body is kept for
	// the recorded error message.
	errorSnippetLength = 200
)

// Attempt outcomes, used for structured logging of the candidate matrix.
const (
	outcomeSuccess     = "success"
	outcomeAuthFailure = "auth_failure"
	outcomeRateLimited = "rate_limited"
	outcomeMalformed   = "malformed"
	outcomeNetwork     = "network_error"
	outcomeProvider    = "provider_error"
)

// Config holds everything the fallback client needs to build its candidate
// matrix and reach the provider.
type Config struct {
	// Kind selects the wire-format adapter.
	Kind ProviderKind

	// Endpoint is the provider base URL, without a trailing slash.
	Endpoint string

	// APIKey is the primary credential; BackupAPIKeys are tried after it, in order.
	APIKey        string
	BackupAPIKeys []string

	// Model is the primary model; FallbackModels are tried after it, in order.
	Model          string
	FallbackModels []string

	// Timeout bounds each individual attempt. Zero selects DefaultTimeout.
	Timeout time.Duration

	// Temperature is passed through to providers that accept it.
	Temperature float64
}

// FallbackClient issues provider calls through an ordered matrix of
// (credential, model) candidates: credentials form the outer loop, models the
// inner loop, primary entries always first. The first usable response wins.
// Auth failures skip the rest of the credential's models, since a rejected
// key will not start working for a different model; rate limits and
// malformed responses are attempt-specific and only advance the inner loop.
type FallbackClient struct {
	adapter     Adapter
	httpClient  *http.Client
	credentials []string
	models      []string
	endpoint    string
	temperature float64
	logger      *slog.Logger
}

// NewFallbackClient creates a FallbackClient from the given configuration.
func NewFallbackClient(cfg Config, logger *slog.Logger) (*FallbackClient, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint cannot be empty", generation.ErrInvalidConfig)
	}

	adapter, err := NewAdapter(cfg.Kind)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &FallbackClient{
		adapter:     adapter,
		httpClient:  &http.Client{Timeout: timeout},
		credentials: dedupe(cfg.APIKey, cfg.BackupAPIKeys),
		models:      dedupe(cfg.Model, cfg.FallbackModels),
		endpoint:    strings.TrimSuffix(cfg.Endpoint, "/"),
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

// dedupe builds [primary] + extras with duplicates removed, order preserved.
func dedupe(primary string, extras []string) []string {
	seen := map[string]bool{primary: true}
	out := []string{primary}
	for _, item := range extras {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// Generate implements generation.Client. It walks the candidate matrix until
// one attempt returns usable content, then returns immediately without trying
// further candidates. When the matrix is exhausted the last recorded error is
// returned; the caller classifies it to decide between failure and fallback
// content.
func (c *FallbackClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	var lastErr error

	for credIdx, credential := range c.credentials {
		for modelIdx, model := range c.models {
			content, credentialDead, err := c.attempt(ctx, credential, model, prompt, maxTokens)
			if err == nil {
				c.logger.InfoContext(ctx, "provider attempt succeeded",
					"provider", c.adapter.Name(),
					"credential_index", credIdx,
					"model", model,
					"content_length", len(content))
				return content, nil
			}

			lastErr = err
			c.logger.WarnContext(ctx, "provider attempt failed",
				"provider", c.adapter.Name(),
				"credential_index", credIdx,
				"model", model,
				"model_index", modelIdx,
				"outcome", classifyOutcome(err),
				"error", redact.Error(err))

			if credentialDead {
				// 401/403 is credential-wide; trying this key against the
				// remaining models would waste attempts.
				break
			}
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no provider candidates configured", generation.ErrGenerationFailed)
	}
	return "", lastErr
}

// attempt performs one HTTP exchange for a single (credential, model) pair.
// credentialDead reports whether the credential itself was rejected, which
// ends the inner model loop for that credential.
func (c *FallbackClient) attempt(
	ctx context.Context,
	credential, model, prompt string,
	maxTokens int,
) (content string, credentialDead bool, err error) {
	params := GenerateParams{
		Credential:  credential,
		Model:       model,
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: c.temperature,
	}

	req, err := c.adapter.NewRequest(ctx, c.endpoint, params)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", generation.ErrNetwork, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", generation.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", false, fmt.Errorf("%w: failed reading response body: %v", generation.ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", false, fmt.Errorf("%w: %s model %s returned 429: %s",
			generation.ErrRateLimited, c.adapter.Name(), model, errorSnippet(body))

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", true, fmt.Errorf("%w: %s returned status %d",
			generation.ErrAuth, c.adapter.Name(), resp.StatusCode)

	case resp.StatusCode == http.StatusOK:
		extracted, err := c.adapter.ExtractContent(body)
		if err != nil {
			return "", false, err
		}
		if utf8.RuneCountInString(strings.TrimSpace(extracted)) < minContentLength {
			return "", false, fmt.Errorf("%w: content shorter than %d characters",
				generation.ErrMalformedResponse, minContentLength)
		}
		return extracted, false, nil

	default:
		return "", false, fmt.Errorf("%w: %s returned status %d: %s",
			generation.ErrGenerationFailed, c.adapter.Name(), resp.StatusCode, errorSnippet(body))
	}
}

// classifyOutcome maps an attempt error onto its outcome label for logging.
func classifyOutcome(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, generation.ErrAuth):
		return outcomeAuthFailure
	case errors.Is(err, generation.ErrRateLimited):
		return outcomeRateLimited
	case errors.Is(err, generation.ErrMalformedResponse):
		return outcomeMalformed
	case errors.Is(err, generation.ErrNetwork):
		return outcomeNetwork
	default:
		return outcomeProvider
	}
}

// errorSnippet trims a provider error body down to a short, redacted line
// suitable for carrying inside an error message.
func errorSnippet(body []byte) string {
	snippet := strings.Join(strings.Fields(string(body)), " ")
	if utf8.RuneCountInString(snippet) > errorSnippetLength {
		snippet = string([]rune(snippet)[:errorSnippetLength])
	}
	return redact.String(snippet)
}
