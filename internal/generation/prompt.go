package generation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Character budgets applied to source text before it is embedded in a prompt.
// Generation prompts carry more surrounding instruction than clarification
// prompts, hence the different limits.
const (
	// GenerationCharBudget is the source text limit for summary, flashcard,
	// and quiz prompts.
	GenerationCharBudget = 8000

	// ClarificationCharBudget is the source text limit for clarification prompts.
	ClarificationCharBudget = 6000

	// TruncationMarker is appended whenever source text is cut at the budget,
	// so the model knows the material is incomplete.
	TruncationMarker = "\n...[content truncated]"
)

// Delimiters wrapped around user-supplied text inside every prompt. Keeping
// data clearly separated from instructions reduces prompt-injection ambiguity.
const (
	sourceTextBegin = "---BEGIN STUDY MATERIAL---"
	sourceTextEnd   = "---END STUDY MATERIAL---"
)

// PromptBuilder composes provider-agnostic prompts from fixed instructional
// templates plus caller-supplied source text. It holds no state; every method
// is a pure function of its inputs.
type PromptBuilder struct{}

// NewPromptBuilder creates a PromptBuilder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// truncate cuts text at the given character budget, appending the truncation
// marker when content was dropped. Text at or under the budget passes through
// unmodified. The budget counts characters, not bytes, so multi-byte text is
// never cut mid-rune.
func truncate(text string, budget int) string {
	if utf8.RuneCountInString(text) <= budget {
		return text
	}

	runes := []rune(text)
	return string(runes[:budget]) + TruncationMarker
}

// delimit wraps source text between the begin/end markers.
func delimit(text string) string {
	return sourceTextBegin + "\n" + text + "\n" + sourceTextEnd
}

// Summary builds the prompt for a prose summary of the source text.
func (b *PromptBuilder) Summary(sourceText string) string {
	var sb strings.Builder
	sb.WriteString("You are a study assistant. Write a clear, well-organized summary of the study material below.\n\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString("- Cover the main concepts and their relationships.\n")
	sb.WriteString("- Use short paragraphs; prefer plain language over jargon.\n")
	sb.WriteString("- Do not add information that is not present in the material.\n\n")
	sb.WriteString(delimit(truncate(sourceText, GenerationCharBudget)))
	sb.WriteString("\n\nWrite the summary now. Respond with the summary text only.")
	return sb.String()
}

// Flashcards builds the prompt for a question/answer flashcard set.
// The count is embedded in the instructions so the model produces the
// requested number of cards.
func (b *PromptBuilder) Flashcards(sourceText string, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a study assistant. Create exactly %d flashcards from the study material below.\n\n", count)
	sb.WriteString("Requirements:\n")
	sb.WriteString("- Each card tests one fact or concept from the material.\n")
	sb.WriteString("- Questions must be answerable from the material alone.\n")
	sb.WriteString("- Keep answers to one or two sentences.\n\n")
	sb.WriteString("Output format (repeat for every card):\n")
	sb.WriteString("Q: <question>\n")
	sb.WriteString("A: <answer>\n\n")
	sb.WriteString("Example:\n")
	sb.WriteString("Q: What process do plants use to convert light into chemical energy?\n")
	sb.WriteString("A: Photosynthesis.\n\n")
	sb.WriteString(delimit(truncate(sourceText, GenerationCharBudget)))
	sb.WriteString("\n\nProduce the flashcards now, using only the Q:/A: format above.")
	return sb.String()
}

// Quiz builds the prompt for a quiz question set. The model is instructed to
// answer with a JSON array so the quiz parser can decode it directly.
func (b *PromptBuilder) Quiz(sourceText string) string {
	var sb strings.Builder
	sb.WriteString("You are a study assistant. Create a quiz of 5 to 10 questions from the study material below.\n\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString("- Mix multiple choice and short answer questions.\n")
	sb.WriteString("- Multiple choice questions must have exactly 4 options, one of them correct.\n")
	sb.WriteString("- Every question must be answerable from the material alone.\n\n")
	sb.WriteString("Output format: a single JSON array of objects, one per question:\n")
	sb.WriteString(`[{"question_text": "...", "question_type": "multiple_choice", "correct_answer": "...", "options": ["...", "...", "...", "..."]},` + "\n")
	sb.WriteString(` {"question_text": "...", "question_type": "short_answer", "correct_answer": "..."}]` + "\n\n")
	sb.WriteString(delimit(truncate(sourceText, GenerationCharBudget)))
	sb.WriteString("\n\nProduce the quiz now. Respond with the JSON array only, no other text.")
	return sb.String()
}

// Clarification builds the prompt for answering a student's question about
// the source text. studyContext is optional prior conversation or notes and
// may be empty.
func (b *PromptBuilder) Clarification(question, sourceText, studyContext string) string {
	var sb strings.Builder
	sb.WriteString("You are a study assistant. A student is working through the material below and has a question.\n\n")
	if studyContext != "" {
		sb.WriteString("Additional context from the student:\n")
		sb.WriteString(studyContext)
		sb.WriteString("\n\n")
	}
	sb.WriteString(delimit(truncate(sourceText, ClarificationCharBudget)))
	fmt.Fprintf(&sb, "\n\nStudent question: %s\n\n", question)
	sb.WriteString("Answer the question using the material above. If the material does not cover it, say so before answering from general knowledge.")
	return sb.String()
}
