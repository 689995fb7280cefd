package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studygen/studygen-api/internal/domain"
)

func TestFallbackFlashcardRoundTrip(t *testing.T) {
	t.Parallel()

	// The fallback flashcard text must survive its own parser: the degraded
	// path reuses the live parsing path, so the two formats may never drift.
	fallback := NewFallbackGenerator()
	text := fallback.FlashcardText("irrelevant prompt")

	cards := ParseFlashcards(text, domain.MaxFlashcards)
	require.Len(t, cards, len(flashcardTemplates))

	for i, card := range cards {
		assert.Equal(t, i+1, card.OrderNum)
		assert.NotEmpty(t, card.Question)
		assert.NotEmpty(t, card.Answer)
	}
}

func TestFallbackFlashcardsRespectLimit(t *testing.T) {
	t.Parallel()

	fallback := NewFallbackGenerator()
	cards := fallback.Flashcards("prompt", 4)
	assert.Len(t, cards, 4)
}

func TestFallbackQuizShape(t *testing.T) {
	t.Parallel()

	fallback := NewFallbackGenerator()
	questions := fallback.Quiz("prompt")
	require.Len(t, questions, domain.MaxQuizQuestions)

	for i, q := range questions {
		assert.Equal(t, i+1, q.OrderNum)
		require.NoError(t, q.Validate())
	}
}

func TestFallbackTopicExtraction(t *testing.T) {
	t.Parallel()

	fallback := NewFallbackGenerator()

	prompt := "Instructions here.\n" + sourceTextBegin + "\nNotes on the French Revolution and its aftermath.\n" + sourceTextEnd
	summary := fallback.Summary(prompt)
	assert.Contains(t, summary, "French Revolution")
	assert.Contains(t, summary, DegradedContentNotice)

	// No title-cased phrase: fall back to the generic placeholder.
	plain := sourceTextBegin + "\nall lowercase notes about nothing in particular\n" + sourceTextEnd
	summary = fallback.Summary(plain)
	assert.Contains(t, summary, defaultTopic)
}

func TestExtractTopicSearchesDataSectionOnly(t *testing.T) {
	t.Parallel()

	// A title-cased phrase in the instruction block must not win over the
	// delimited data section.
	prompt := "You Are A Study Assistant.\n" + sourceTextBegin + "\nIntroduction to Quantum Mechanics.\n" + sourceTextEnd
	assert.Equal(t, "Quantum Mechanics", extractTopic(prompt))
}
