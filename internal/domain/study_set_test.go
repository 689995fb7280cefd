package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewStudySet(t *testing.T) {
	t.Parallel() // Enable parallel execution

	text := "The mitochondria is the powerhouse of the cell."

	set, err := NewStudySet(text)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if set.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if set.SourceText != text {
		t.Errorf("Expected text %s, got %s", text, set.SourceText)
	}

	if set.Status != StudySetStatusPending {
		t.Errorf("Expected status %s, got %s", StudySetStatusPending, set.Status)
	}

	if set.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Empty source text
	_, err = NewStudySet("")
	if err != ErrEmptySourceText {
		t.Errorf("Expected error %v, got %v", ErrEmptySourceText, err)
	}
}

func TestStudySetUpdateStatus(t *testing.T) {
	t.Parallel() // Enable parallel execution

	set, err := NewStudySet("Some source text.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := set.UpdatedAt

	if err := set.UpdateStatus(StudySetStatusProcessing); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if set.Status != StudySetStatusProcessing {
		t.Errorf("Expected status %s, got %s", StudySetStatusProcessing, set.Status)
	}

	if set.UpdatedAt.Before(before) {
		t.Error("Expected UpdatedAt to advance")
	}

	if err := set.UpdateStatus(StudySetStatus("archived")); err != ErrInvalidStudyStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidStudyStatus, err)
	}
}

func TestStudySetValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	valid := StudySet{
		ID:         uuid.New(),
		SourceText: "text",
		Status:     StudySetStatusCompleted,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid study set, got %v", err)
	}

	missingID := valid
	missingID.ID = uuid.Nil
	if err := missingID.Validate(); err != ErrEmptyStudySetID {
		t.Errorf("Expected error %v, got %v", ErrEmptyStudySetID, err)
	}

	badStatus := valid
	badStatus.Status = StudySetStatus("paused")
	if err := badStatus.Validate(); err != ErrInvalidStudyStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidStudyStatus, err)
	}
}
