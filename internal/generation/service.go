package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/studygen/studygen-api/internal/domain"
)

// Token budgets per material kind, passed to the provider client.
const (
	summaryTokenBudget       = 1024
	flashcardsTokenBudget    = 2048
	quizTokenBudget          = 2048
	clarificationTokenBudget = 1024
)

// DefaultFlashcardCount is used when a caller does not request a specific
// number of cards.
const DefaultFlashcardCount = 10

// Client is the boundary to LLM providers. Implementations are expected to
// try their full candidate matrix internally and return either usable content
// or the last error recorded during the attempts.
type Client interface {
	// Generate sends the prompt to a provider and returns the raw model text.
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// SummaryResult is the outcome of a summary generation call.
type SummaryResult struct {
	Summary  string `json:"summary"`
	Degraded bool   `json:"degraded"`
}

// FlashcardsResult is the outcome of a flashcard generation call.
type FlashcardsResult struct {
	Flashcards []*domain.Flashcard `json:"flashcards"`
	Degraded   bool                `json:"degraded"`
}

// QuizResult is the outcome of a quiz generation call.
type QuizResult struct {
	Questions []*domain.QuizQuestion `json:"questions"`
	Degraded  bool                   `json:"degraded"`
}

// ClarificationResult is the outcome of a clarification call.
type ClarificationResult struct {
	Explanation string `json:"explanation"`
	Degraded    bool   `json:"degraded"`
}

// Service is the generation facade: the four public operations that wire the
// prompt builder, provider client, parsers, rate-limit classifier, and
// fallback generator together. Each call is stateless and fully synchronous;
// no state is shared between requests.
type Service struct {
	client   Client
	prompts  *PromptBuilder
	fallback *FallbackGenerator
	logger   *slog.Logger
}

// NewService creates a Service with the given provider client and logger.
func NewService(client Client, logger *slog.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: client cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfig)
	}

	return &Service{
		client:   client,
		prompts:  NewPromptBuilder(),
		fallback: NewFallbackGenerator(),
		logger:   logger,
	}, nil
}

// GenerateSummary produces a prose summary of the source text. If every
// provider candidate was rate-limited, a deterministic fallback summary is
// returned with the Degraded flag set instead of an error.
func (s *Service) GenerateSummary(ctx context.Context, sourceText string) (*SummaryResult, error) {
	if sourceText == "" {
		return nil, ErrEmptySourceText
	}

	prompt := s.prompts.Summary(sourceText)
	content, err := s.client.Generate(ctx, prompt, summaryTokenBudget)
	if err != nil {
		if IsRateLimit(err.Error()) {
			s.logger.WarnContext(ctx, "summary generation rate limited, substituting fallback content",
				"error", err)
			return &SummaryResult{Summary: s.fallback.Summary(prompt), Degraded: true}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	s.logger.DebugContext(ctx, "summary generated",
		"content_length", len(content))
	return &SummaryResult{Summary: content}, nil
}

// GenerateFlashcards produces up to count flashcards from the source text.
// count is clamped to the hard cap; a non-positive count selects the default.
// Rate-limited exhaustion yields degraded fallback cards; an unparseable
// response surfaces as an error, deliberately not masked with generic cards.
func (s *Service) GenerateFlashcards(ctx context.Context, sourceText string, count int) (*FlashcardsResult, error) {
	if sourceText == "" {
		return nil, ErrEmptySourceText
	}

	if count <= 0 {
		count = DefaultFlashcardCount
	}
	if count > domain.MaxFlashcards {
		count = domain.MaxFlashcards
	}

	prompt := s.prompts.Flashcards(sourceText, count)
	content, err := s.client.Generate(ctx, prompt, flashcardsTokenBudget)
	if err != nil {
		if IsRateLimit(err.Error()) {
			s.logger.WarnContext(ctx, "flashcard generation rate limited, substituting fallback content",
				"error", err,
				"count", count)
			return &FlashcardsResult{Flashcards: s.fallback.Flashcards(prompt, count), Degraded: true}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	cards := ParseFlashcards(content, count)
	if len(cards) == 0 {
		s.logger.ErrorContext(ctx, "no flashcards recovered from model output",
			"content_length", len(content))
		return nil, fmt.Errorf("%w: no flashcards recognized in model output", ErrMalformedResponse)
	}

	s.logger.DebugContext(ctx, "flashcards generated",
		"requested", count,
		"parsed", len(cards))
	return &FlashcardsResult{Flashcards: cards}, nil
}

// GenerateQuiz produces a validated quiz question set from the source text.
// Parse failures are absorbed into deterministic fallback content
// unconditionally, so a successful provider call always yields questions.
// This is intentionally asymmetric with flashcards, which report parse
// failure to the caller.
func (s *Service) GenerateQuiz(ctx context.Context, sourceText string) (*QuizResult, error) {
	if sourceText == "" {
		return nil, ErrEmptySourceText
	}

	prompt := s.prompts.Quiz(sourceText)
	content, err := s.client.Generate(ctx, prompt, quizTokenBudget)
	if err != nil {
		if IsRateLimit(err.Error()) {
			s.logger.WarnContext(ctx, "quiz generation rate limited, substituting fallback content",
				"error", err)
			return &QuizResult{Questions: s.fallback.Quiz(prompt), Degraded: true}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	questions, err := ParseQuiz(content)
	if err != nil {
		s.logger.WarnContext(ctx, "quiz parse failed, substituting fallback content",
			"error", err,
			"content_length", len(content))
		return &QuizResult{Questions: s.fallback.Quiz(prompt), Degraded: true}, nil
	}

	s.logger.DebugContext(ctx, "quiz generated",
		"question_count", len(questions))
	return &QuizResult{Questions: questions}, nil
}

// GetClarification answers a student question about the source text.
// studyContext is optional and may be empty. There is no canned clarification
// content, so every failure surfaces to the caller.
func (s *Service) GetClarification(ctx context.Context, question, sourceText, studyContext string) (*ClarificationResult, error) {
	if question == "" {
		return nil, errors.New("question cannot be empty")
	}
	if sourceText == "" {
		return nil, ErrEmptySourceText
	}

	prompt := s.prompts.Clarification(question, sourceText, studyContext)
	content, err := s.client.Generate(ctx, prompt, clarificationTokenBudget)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	s.logger.DebugContext(ctx, "clarification generated",
		"content_length", len(content))
	return &ClarificationResult{Explanation: content}, nil
}
