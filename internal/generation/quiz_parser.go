package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/studygen/studygen-api/internal/domain"
)

// quizItemSchema is the loosely-typed shape expected from the model before
// validation promotes elements to domain records.
type quizItemSchema struct {
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
}

var (
	// jsonArrayRe locates the first JSON array-of-objects embedded in
	// surrounding prose.
	jsonArrayRe = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)

	// codeFenceRe strips markdown code fence lines like "```json" or "```".
	codeFenceRe = regexp.MustCompile("(?m)^```[a-zA-Z]*\\s*$")

	// markupTagRe detects HTML/XML error pages masquerading as model output.
	markupTagRe = regexp.MustCompile(`<\s*/?\s*[a-zA-Z][^>]*>`)

	// trailingCommaRe matches a trailing comma before a closing bracket or brace.
	trailingCommaRe = regexp.MustCompile(`,\s*([\]}])`)
)

// ParseQuiz converts raw model output into a validated quiz question set.
// It tolerates code fences, surrounding prose, and minor JSON damage
// (raw control characters inside strings, trailing commas). It returns an
// error when the content is not model output at all (an HTML error page),
// when decoding fails after repair, or when fewer than the minimum number of
// valid questions survive validation. Callers substitute deterministic
// fallback content on error; this function never does so itself.
func ParseQuiz(raw string) ([]*domain.QuizQuestion, error) {
	text := strings.TrimSpace(raw)
	text = codeFenceRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	if match := jsonArrayRe.FindString(text); match != "" {
		text = match
	}

	var items []quizItemSchema
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		// An angle-bracketed page is a proxy or provider error document, not
		// model output; repairing it would be pointless.
		if markupTagRe.MatchString(text) {
			return nil, fmt.Errorf("%w: response is an HTML/XML error page", ErrMalformedResponse)
		}

		repaired := repairJSON(text)
		if err := json.Unmarshal([]byte(repaired), &items); err != nil {
			return nil, fmt.Errorf("%w: quiz JSON did not decode after repair: %v", ErrMalformedResponse, err)
		}
	}

	questions := make([]*domain.QuizQuestion, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.QuestionText) == "" || strings.TrimSpace(item.CorrectAnswer) == "" {
			continue
		}

		questionType := domain.QuestionType(item.QuestionType)
		if item.QuestionType == "" {
			questionType = domain.QuestionTypeShortAnswer
		}

		var options []string
		if len(item.Options) > 0 {
			options = item.Options
		}

		question, err := domain.NewQuizQuestion(
			strings.TrimSpace(item.QuestionText),
			questionType,
			strings.TrimSpace(item.CorrectAnswer),
			options,
			len(questions)+1,
		)
		if err != nil {
			continue
		}

		questions = append(questions, question)
		if len(questions) == domain.MaxQuizQuestions {
			break
		}
	}

	if len(questions) < domain.MinQuizQuestions {
		return nil, fmt.Errorf("%w: %d valid questions, need at least %d",
			ErrInsufficientStructure, len(questions), domain.MinQuizQuestions)
	}

	return questions, nil
}

// repairJSON applies mechanical fixes to near-valid JSON: raw newlines and
// tabs inside string literals become escape sequences, and trailing commas
// before a closing bracket or brace are removed. It deliberately attempts
// nothing structural.
func repairJSON(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	inString := false
	escaped := false
	for _, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
				sb.WriteRune(r)
				continue
			case r == '\\':
				escaped = true
				sb.WriteRune(r)
				continue
			case r == '"':
				inString = false
				sb.WriteRune(r)
				continue
			case r == '\n':
				sb.WriteString(`\n`)
				continue
			case r == '\r':
				sb.WriteString(`\r`)
				continue
			case r == '\t':
				sb.WriteString(`\t`)
				continue
			}
			sb.WriteRune(r)
			continue
		}

		if r == '"' {
			inString = true
		}
		sb.WriteRune(r)
	}

	return trailingCommaRe.ReplaceAllString(sb.String(), "$1")
}
