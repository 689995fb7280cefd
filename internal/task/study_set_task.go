package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studygen/studygen-api/internal/domain"
	"github.com/studygen/studygen-api/internal/generation"
	"github.com/studygen/studygen-api/internal/store"
)

// Common errors
var (
	ErrNilStore      = errors.New("study set store cannot be nil")
	ErrNilGenerator  = errors.New("generator cannot be nil")
	ErrNilLogger     = errors.New("logger cannot be nil")
	ErrEmptyStudySet = errors.New("study set ID cannot be empty")
)

// Generator defines the generation operations the pipeline needs. It is
// satisfied by generation.Service.
type Generator interface {
	// GenerateSummary produces a prose summary of the source text
	GenerateSummary(ctx context.Context, sourceText string) (*generation.SummaryResult, error)

	// GenerateFlashcards produces question/answer flashcards from the source text
	GenerateFlashcards(ctx context.Context, sourceText string, count int) (*generation.FlashcardsResult, error)

	// GenerateQuiz produces quiz questions from the source text
	GenerateQuiz(ctx context.Context, sourceText string) (*generation.QuizResult, error)
}

// studySetPayload represents the serialized data stored in the task
type studySetPayload struct {
	StudySetID uuid.UUID `json:"study_set_id"`
}

// StudySetGenerationTask implements the Task interface for producing the
// three study artifacts from one study set's source text. The artifacts are
// generated strictly in sequence, with a fixed pause between provider calls
// to stay under per-minute rate limits.
type StudySetGenerationTask struct {
	id            uuid.UUID
	studySetID    uuid.UUID
	sets          store.StudySetStore
	generator     Generator
	interCallWait time.Duration
	logger        *slog.Logger
	status        TaskStatus
}

// NewStudySetGenerationTask creates a new study set generation task
func NewStudySetGenerationTask(
	studySetID uuid.UUID,
	sets store.StudySetStore,
	generator Generator,
	interCallWait time.Duration,
	logger *slog.Logger,
) (*StudySetGenerationTask, error) {
	if sets == nil {
		return nil, ErrNilStore
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if studySetID == uuid.Nil {
		return nil, ErrEmptyStudySet
	}

	return &StudySetGenerationTask{
		id:            uuid.New(),
		studySetID:    studySetID,
		sets:          sets,
		generator:     generator,
		interCallWait: interCallWait,
		logger:        logger.With("task_type", TaskTypeStudySetGeneration, "study_set_id", studySetID),
		status:        TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *StudySetGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *StudySetGenerationTask) Type() string {
	return TaskTypeStudySetGeneration
}

// Payload returns the task data as a byte slice
func (t *StudySetGenerationTask) Payload() []byte {
	data, err := json.Marshal(studySetPayload{StudySetID: t.studySetID})
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *StudySetGenerationTask) Status() TaskStatus {
	return t.status
}

// Execute runs the full pipeline: fetch the study set, mark it processing,
// generate summary, flashcards, and quiz in that order, and record the final
// status. A single failed artifact does not abort the pipeline; the set
// finishes as completed_with_errors. Only when every artifact fails is the
// set marked failed.
func (t *StudySetGenerationTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting study set generation task")

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	set, err := t.sets.GetByID(ctx, t.studySetID)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to retrieve study set", "error", err)
		return fmt.Errorf("failed to retrieve study set: %w", err)
	}

	if err := t.transition(ctx, set, domain.StudySetStatusProcessing); err != nil {
		t.status = TaskStatusFailed
		return err
	}

	failed := 0

	summary, err := t.generator.GenerateSummary(ctx, set.SourceText)
	if err != nil {
		failed++
		t.logger.Error("summary generation failed", "error", err)
	} else {
		set.Summary = summary.Summary
		t.logger.Info("summary generated", "degraded", summary.Degraded)
	}

	if err := t.pause(ctx); err != nil {
		return t.abort(ctx, set, err)
	}

	cards, err := t.generator.GenerateFlashcards(ctx, set.SourceText, 0)
	if err != nil {
		failed++
		t.logger.Error("flashcard generation failed", "error", err)
	} else {
		set.Flashcards = cards.Flashcards
		t.logger.Info("flashcards generated", "count", len(cards.Flashcards), "degraded", cards.Degraded)
	}

	if err := t.pause(ctx); err != nil {
		return t.abort(ctx, set, err)
	}

	quiz, err := t.generator.GenerateQuiz(ctx, set.SourceText)
	if err != nil {
		failed++
		t.logger.Error("quiz generation failed", "error", err)
	} else {
		set.Quiz = quiz.Questions
		t.logger.Info("quiz generated", "count", len(quiz.Questions), "degraded", quiz.Degraded)
	}

	final := domain.StudySetStatusCompleted
	switch {
	case failed == 3:
		final = domain.StudySetStatusFailed
	case failed > 0:
		final = domain.StudySetStatusCompletedWithErrors
	}

	if err := t.transition(ctx, set, final); err != nil {
		t.status = TaskStatusFailed
		return err
	}

	if final == domain.StudySetStatusFailed {
		t.status = TaskStatusFailed
		return fmt.Errorf("all artifacts failed for study set %s", t.studySetID)
	}

	t.status = TaskStatusCompleted
	t.logger.Info("study set generation task completed", "status", final, "failed_artifacts", failed)
	return nil
}

// transition updates the study set status and persists the whole aggregate.
func (t *StudySetGenerationTask) transition(ctx context.Context, set *domain.StudySet, status domain.StudySetStatus) error {
	if err := set.UpdateStatus(status); err != nil {
		t.logger.Error("invalid status transition", "status", status, "error", err)
		return fmt.Errorf("invalid status transition: %w", err)
	}

	if err := t.sets.Update(ctx, set); err != nil {
		t.logger.Error("failed to persist study set", "status", status, "error", err)
		return fmt.Errorf("failed to persist study set: %w", err)
	}

	return nil
}

// abort handles a cancelled context mid-pipeline: mark the set failed with
// a background context so the write is not itself cancelled.
func (t *StudySetGenerationTask) abort(ctx context.Context, set *domain.StudySet, cause error) error {
	_ = t.transition(context.WithoutCancel(ctx), set, domain.StudySetStatusFailed)
	t.status = TaskStatusFailed
	return fmt.Errorf("task cancelled by context: %w", cause)
}

// pause waits the configured inter-call delay, returning early if the
// context is cancelled.
func (t *StudySetGenerationTask) pause(ctx context.Context) error {
	if t.interCallWait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(t.interCallWait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
