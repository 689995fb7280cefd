package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StudySetStatus represents the processing state of a study set
type StudySetStatus string

// Possible study set status values
const (
	StudySetStatusPending             StudySetStatus = "pending"
	StudySetStatusProcessing          StudySetStatus = "processing"
	StudySetStatusCompleted           StudySetStatus = "completed"
	StudySetStatusCompletedWithErrors StudySetStatus = "completed_with_errors"
	StudySetStatusFailed              StudySetStatus = "failed"
)

// Common validation errors for StudySet
var (
	ErrEmptyStudySetID    = errors.New("study set ID cannot be empty")
	ErrEmptySourceText    = errors.New("study set source text cannot be empty")
	ErrInvalidStudyStatus = errors.New("invalid study set status")
	ErrStudySetNotFound   = errors.New("study set not found")
)

// StudySet is the aggregate produced from one block of source text: a prose
// summary, a flashcard set, and a quiz, generated sequentially in the
// background. It tracks the original content and the processing state the
// same way a pending document upload would.
type StudySet struct {
	ID         uuid.UUID       `json:"id"`
	SourceText string          `json:"source_text"`
	Status     StudySetStatus  `json:"status"`
	Summary    string          `json:"summary,omitempty"`
	Flashcards []*Flashcard    `json:"flashcards,omitempty"`
	Quiz       []*QuizQuestion `json:"quiz,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewStudySet creates a new StudySet in the pending state for the given
// source text. It generates a new UUID and sets creation timestamps.
// Returns an error if validation fails.
func NewStudySet(sourceText string) (*StudySet, error) {
	set := &StudySet{
		ID:         uuid.New(),
		SourceText: sourceText,
		Status:     StudySetStatusPending,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks if the StudySet has valid data.
func (s *StudySet) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyStudySetID
	}

	if s.SourceText == "" {
		return ErrEmptySourceText
	}

	if !isValidStudySetStatus(s.Status) {
		return ErrInvalidStudyStatus
	}

	return nil
}

// UpdateStatus sets a new status and refreshes the update timestamp.
// Returns an error if the status is not a recognized value.
func (s *StudySet) UpdateStatus(status StudySetStatus) error {
	if !isValidStudySetStatus(status) {
		return ErrInvalidStudyStatus
	}

	s.Status = status
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// isValidStudySetStatus checks if the given status is a valid StudySetStatus.
func isValidStudySetStatus(status StudySetStatus) bool {
	switch status {
	case StudySetStatusPending,
		StudySetStatusProcessing,
		StudySetStatusCompleted,
		StudySetStatusCompletedWithErrors,
		StudySetStatusFailed:
		return true
	default:
		return false
	}
}
