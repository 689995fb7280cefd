package generation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/studygen/studygen-api/internal/domain"
)

// DegradedContentNotice is prepended to fallback material so the end user can
// tell canned content from live model output.
const DegradedContentNotice = "Note: the study assistant is temporarily unavailable, so this is general-purpose content."

// defaultTopic is used when no topic phrase can be extracted from the prompt.
const defaultTopic = "the study material"

// titleCasePhraseRe matches a multi-word title-cased phrase, the crude signal
// used to flavor fallback content with something resembling the source topic.
var titleCasePhraseRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+(?:of|the|and|in)?\s*[A-Z][a-z]+)+\b`)

// FallbackGenerator produces deterministic, topic-flavored placeholder
// material for the cases where live generation is impossible. Its output is
// cosmetic by design: the topic heuristic carries no relevance guarantee, and
// every payload is labeled as degraded content.
type FallbackGenerator struct{}

// NewFallbackGenerator creates a FallbackGenerator.
func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

// extractTopic pulls the first title-cased multi-word phrase near the
// embedded source text out of a prompt, defaulting to a generic placeholder.
// Only the delimited data section is searched when present, so instructional
// boilerplate never wins.
func extractTopic(promptText string) string {
	search := promptText
	if idx := strings.Index(promptText, sourceTextBegin); idx >= 0 {
		search = promptText[idx+len(sourceTextBegin):]
	}

	if phrase := titleCasePhraseRe.FindString(search); phrase != "" {
		return phrase
	}
	return defaultTopic
}

// Summary returns a fixed-shape templated summary flavored with the
// extracted topic.
func (g *FallbackGenerator) Summary(promptText string) string {
	topic := extractTopic(promptText)
	var sb strings.Builder
	sb.WriteString(DegradedContentNotice)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "This material covers %s. ", topic)
	sb.WriteString("Start by identifying the key terms and definitions, then work out how the main concepts relate to each other. ")
	sb.WriteString("Re-read the opening and closing sections, which usually state the central ideas, and write down any question you cannot answer from memory. ")
	fmt.Fprintf(&sb, "Once the assistant is available again, regenerate this summary for an overview specific to %s.", topic)
	return sb.String()
}

// flashcardTemplates are generic study-skill cards. Each entry is a
// question/answer pair; a single %s slot in either side receives the topic.
var flashcardTemplates = [][2]string{
	{"What is the main subject of %s?", "Review the opening section of the material, which introduces the central subject."},
	{"Name three key terms used in %s.", "Scan the material for emphasized or repeated terms and write down their definitions."},
	{"What problem or question does %s address?", "Look for the motivation stated near the start of the material."},
	{"How are the main concepts in %s related?", "Sketch a diagram connecting each major concept to the ones it depends on."},
	{"What is one real-world application of %s?", "Check the examples in the material, or think of where these ideas appear in practice."},
	{"Which part of %s do you understand least?", "Mark it now and revisit it after reviewing the rest of the material."},
	{"Summarize %s in one sentence.", "Force yourself to compress the material; if you cannot, re-read the key sections."},
	{"What evidence or examples support the main claims in %s?", "List each claim and the example given for it in the material."},
	{"What came before %s historically or logically?", "Identify the background knowledge the material assumes."},
	{"What terminology in %s is new to you?", "Write each new term on its own card with a definition in your own words."},
	{"How would you explain %s to someone unfamiliar with it?", "Use an analogy from everyday life and check it against the material."},
	{"What are the limitations or open questions in %s?", "Look for hedged language or explicitly stated open problems."},
	{"Which formulas, dates, or names in %s must be memorized?", "Extract them into a list and test yourself separately."},
	{"How does %s connect to what you studied previously?", "Name at least one concept from earlier material that reappears here."},
	{"What would a test question about %s look like?", "Write one yourself; predicting questions is an effective way to study."},
}

// FlashcardText renders the generic flashcard set as model-style Q:/A: text.
// The format matches what ParseFlashcards accepts, so degraded content flows
// through the same parsing path as live output.
func (g *FallbackGenerator) FlashcardText(promptText string) string {
	topic := extractTopic(promptText)
	var sb strings.Builder
	for _, pair := range flashcardTemplates {
		fmt.Fprintf(&sb, "Q: %s\n", interpolate(pair[0], topic))
		fmt.Fprintf(&sb, "A: %s\n\n", interpolate(pair[1], topic))
	}
	return sb.String()
}

// Flashcards returns the generic flashcard set as domain records, truncated
// to limit.
func (g *FallbackGenerator) Flashcards(promptText string, limit int) []*domain.Flashcard {
	return ParseFlashcards(g.FlashcardText(promptText), limit)
}

// Quiz returns the generic quiz set: ten study-skill questions flavored with
// the extracted topic.
func (g *FallbackGenerator) Quiz(promptText string) []*domain.QuizQuestion {
	topic := extractTopic(promptText)

	type quizTemplate struct {
		text         string
		questionType domain.QuestionType
		answer       string
		options      []string
	}

	templates := []quizTemplate{
		{
			text:         "Which study technique is most effective for long-term retention of %s?",
			questionType: domain.QuestionTypeMultipleChoice,
			answer:       "Spaced repetition with self-testing",
			options:      []string{"Re-reading the material once", "Spaced repetition with self-testing", "Highlighting every sentence", "Listening to music while reading"},
		},
		{
			text:         "When first approaching %s, what should you identify?",
			questionType: domain.QuestionTypeMultipleChoice,
			answer:       "The key terms and main concepts",
			options:      []string{"The page count", "The key terms and main concepts", "The author's biography", "The typeface used"},
		},
		{
			text:         "What is the benefit of writing practice questions about %s yourself?",
			questionType: domain.QuestionTypeShortAnswer,
			answer:       "Predicting questions forces active recall and reveals gaps in understanding.",
		},
		{
			text:         "Which of these is an example of active recall while studying %s?",
			questionType: domain.QuestionTypeMultipleChoice,
			answer:       "Answering questions from memory before checking the material",
			options:      []string{"Copying the material word for word", "Answering questions from memory before checking the material", "Reading the material aloud", "Organizing your desk"},
		},
		{
			text:         "Why should you summarize %s in your own words?",
			questionType: domain.QuestionTypeShortAnswer,
			answer:       "Rephrasing checks comprehension; you cannot restate what you do not understand.",
		},
		{
			text:         "How often should you review %s for durable learning?",
			questionType: domain.QuestionTypeMultipleChoice,
			answer:       "At increasing intervals over days and weeks",
			options:      []string{"Only the night before a test", "At increasing intervals over days and weeks", "Once, immediately after reading", "Every hour on the same day"},
		},
		{
			text:         "What should you do with the parts of %s you understand least?",
			questionType: domain.QuestionTypeShortAnswer,
			answer:       "Mark them and return to them after reviewing the surrounding material.",
		},
		{
			text:         "Which habit most undermines studying %s?",
			questionType: domain.QuestionTypeMultipleChoice,
			answer:       "Passive re-reading without self-testing",
			options:      []string{"Taking short breaks", "Passive re-reading without self-testing", "Explaining concepts to a peer", "Writing your own examples"},
		},
		{
			text:         "Name one way to connect %s to knowledge you already have.",
			questionType: domain.QuestionTypeShortAnswer,
			answer:       "Relate each new concept to an earlier one, or build an analogy from everyday experience.",
		},
		{
			text:         "What is the purpose of sketching a concept map for %s?",
			questionType: domain.QuestionTypeShortAnswer,
			answer:       "It makes the relationships between concepts explicit instead of leaving them implied.",
		},
	}

	questions := make([]*domain.QuizQuestion, 0, len(templates))
	for i, tmpl := range templates {
		question, err := domain.NewQuizQuestion(
			interpolate(tmpl.text, topic),
			tmpl.questionType,
			tmpl.answer,
			tmpl.options,
			i+1,
		)
		if err != nil {
			continue
		}
		questions = append(questions, question)
	}
	return questions
}

// interpolate substitutes the topic into a template holding a single
// optional %s slot.
func interpolate(template, topic string) string {
	if strings.Contains(template, "%s") {
		return fmt.Sprintf(template, topic)
	}
	return template
}
