package domain

import "errors"

// MaterialKind identifies which learning artifact a generation call produces.
// It selects both the prompt template and the parser applied to the model output.
type MaterialKind string

// Possible material kinds
const (
	MaterialSummary       MaterialKind = "summary"
	MaterialFlashcards    MaterialKind = "flashcards"
	MaterialQuiz          MaterialKind = "quiz"
	MaterialClarification MaterialKind = "clarification"
)

// QuestionType identifies the answer format of a quiz question.
type QuestionType string

// Possible quiz question types
const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
)

// Limits applied to parsed material sets.
const (
	// MaxFlashcards caps the number of flashcards emitted for one source text.
	MaxFlashcards = 15

	// MinQuizQuestions is the smallest quiz that counts as a usable parse.
	MinQuizQuestions = 5

	// MaxQuizQuestions caps the number of quiz questions emitted.
	MaxQuizQuestions = 10

	// MultipleChoiceOptionCount is the required option count for
	// multiple-choice questions.
	MultipleChoiceOptionCount = 4
)

// Common validation errors for material records
var (
	ErrEmptyQuestion      = errors.New("question cannot be empty")
	ErrEmptyAnswer        = errors.New("answer cannot be empty")
	ErrInvalidOrderNum    = errors.New("order number must be positive")
	ErrInvalidOptionCount = errors.New("multiple choice questions require exactly 4 options")
	ErrInvalidMaterial    = errors.New("invalid material kind")
	ErrInvalidQuestion    = errors.New("invalid question type")
)

// Flashcard is a single question/answer pair generated from source text.
// OrderNum is the 1-based position within its set and defines presentation
// order independent of any external identifier.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	OrderNum int    `json:"order_num"`
}

// NewFlashcard creates a validated Flashcard.
// Returns an error if either side is empty or the order number is not positive.
func NewFlashcard(question, answer string, orderNum int) (*Flashcard, error) {
	card := &Flashcard{
		Question: question,
		Answer:   answer,
		OrderNum: orderNum,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
func (f *Flashcard) Validate() error {
	if f.Question == "" {
		return ErrEmptyQuestion
	}

	if f.Answer == "" {
		return ErrEmptyAnswer
	}

	if f.OrderNum < 1 {
		return ErrInvalidOrderNum
	}

	return nil
}

// QuizQuestion is a single quiz item generated from source text.
// Options is populated only for multiple-choice questions, in which case it
// holds exactly four entries.
type QuizQuestion struct {
	QuestionText  string       `json:"question_text"`
	QuestionType  QuestionType `json:"question_type"`
	CorrectAnswer string       `json:"correct_answer"`
	Options       []string     `json:"options,omitempty"`
	OrderNum      int          `json:"order_num"`
}

// NewQuizQuestion creates a validated QuizQuestion.
func NewQuizQuestion(
	text string,
	questionType QuestionType,
	correctAnswer string,
	options []string,
	orderNum int,
) (*QuizQuestion, error) {
	q := &QuizQuestion{
		QuestionText:  text,
		QuestionType:  questionType,
		CorrectAnswer: correctAnswer,
		Options:       options,
		OrderNum:      orderNum,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks if the QuizQuestion has valid data.
func (q *QuizQuestion) Validate() error {
	if q.QuestionText == "" {
		return ErrEmptyQuestion
	}

	if q.CorrectAnswer == "" {
		return ErrEmptyAnswer
	}

	if q.QuestionType != QuestionTypeMultipleChoice && q.QuestionType != QuestionTypeShortAnswer {
		return ErrInvalidQuestion
	}

	if q.QuestionType == QuestionTypeMultipleChoice && len(q.Options) != MultipleChoiceOptionCount {
		return ErrInvalidOptionCount
	}

	if q.OrderNum < 1 {
		return ErrInvalidOrderNum
	}

	return nil
}

// IsValidMaterialKind reports whether the given kind is one of the
// recognized material kinds.
func IsValidMaterialKind(kind MaterialKind) bool {
	switch kind {
	case MaterialSummary, MaterialFlashcards, MaterialQuiz, MaterialClarification:
		return true
	default:
		return false
	}
}
