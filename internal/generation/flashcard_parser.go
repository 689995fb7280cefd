package generation

import (
	"regexp"
	"strings"

	"github.com/studygen/studygen-api/internal/domain"
)

// parserState tracks which buffer an unlabeled line belongs to while walking
// the model output line by line.
type parserState int

const (
	stateIdle parserState = iota
	stateInQuestion
	stateInAnswer
)

// Heading grammar for flashcard output. Models label cards inconsistently:
// "Q:", "Question 3:", bold-wrapped "**Q:**", or a bare "1." numbering. The
// grammar is centralized here so it can be tested in isolation.
var (
	questionHeadingRe = regexp.MustCompile(`(?i)^\s*(?:\*\*\s*)?(?:q|question)(?:\s*\d+)?\s*(?:\*\*\s*)?[:.]\s*(?:\*\*\s*)?(.*)$`)
	answerHeadingRe   = regexp.MustCompile(`(?i)^\s*(?:\*\*\s*)?(?:a|answer)(?:\s*\d+)?\s*(?:\*\*\s*)?[:.]\s*(?:\*\*\s*)?(.*)$`)
	bareNumberRe      = regexp.MustCompile(`^\s*\d{1,3}[.)]\s+(.*)$`)
)

// stripBoldSuffix removes a trailing markdown bold marker left over when a
// heading was wrapped as "**Q: text**".
func stripBoldSuffix(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "**"))
}

// ParseFlashcards converts raw model output into validated flashcards using a
// single-pass line state machine. Multi-line questions and answers are
// supported; unlabeled lines are appended to whichever buffer is open. The
// result is truncated to limit. An empty result signals a parse failure:
// this parser never synthesizes placeholder cards, so callers must not treat
// emptiness as success.
func ParseFlashcards(raw string, limit int) []*domain.Flashcard {
	if limit <= 0 || limit > domain.MaxFlashcards {
		limit = domain.MaxFlashcards
	}

	var cards []*domain.Flashcard
	var question, answer []string
	state := stateIdle

	emit := func() {
		if len(question) == 0 || len(answer) == 0 {
			return
		}
		card, err := domain.NewFlashcard(
			strings.Join(question, " "),
			strings.Join(answer, " "),
			len(cards)+1,
		)
		if err != nil {
			return
		}
		cards = append(cards, card)
	}

	openQuestion := func(remainder string) {
		emit()
		question = question[:0]
		answer = answer[:0]
		if remainder != "" {
			question = append(question, remainder)
		}
		state = stateInQuestion
	}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := questionHeadingRe.FindStringSubmatch(trimmed); m != nil {
			openQuestion(stripBoldSuffix(m[1]))
			continue
		}

		if m := answerHeadingRe.FindStringSubmatch(trimmed); m != nil {
			answer = answer[:0]
			if rest := stripBoldSuffix(m[1]); rest != "" {
				answer = append(answer, rest)
			}
			state = stateInAnswer
			continue
		}

		// A bare "1." or "2)" numbering opens a question only when no
		// question is currently being collected; inside one it is just
		// content (for example a numbered list in an answer).
		if state != stateInQuestion {
			if m := bareNumberRe.FindStringSubmatch(trimmed); m != nil {
				openQuestion(stripBoldSuffix(m[1]))
				continue
			}
		}

		switch state {
		case stateInQuestion:
			question = append(question, trimmed)
		case stateInAnswer:
			answer = append(answer, trimmed)
		case stateIdle:
			// Preamble before the first heading carries no card content.
		}
	}

	emit()

	if len(cards) > limit {
		cards = cards[:limit]
	}
	return cards
}
