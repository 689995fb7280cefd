package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studygen/studygen-api/internal/domain"
)

func TestMemoryStudySetStoreCRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStudySetStore()

	set, err := domain.NewStudySet("Notes about cell division.")
	require.NoError(t, err)

	require.NoError(t, s.Create(ctx, set))

	got, err := s.GetByID(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, set.ID, got.ID)
	assert.Equal(t, set.SourceText, got.SourceText)

	// Unknown ID
	_, err = s.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrStudySetNotFound)

	// Update round-trips new fields
	set.Summary = "Cells divide by mitosis."
	require.NoError(t, set.UpdateStatus(domain.StudySetStatusCompleted))
	require.NoError(t, s.Update(ctx, set))

	got, err = s.GetByID(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cells divide by mitosis.", got.Summary)
	assert.Equal(t, domain.StudySetStatusCompleted, got.Status)

	// Updating a missing set fails
	orphan, err := domain.NewStudySet("text")
	require.NoError(t, err)
	assert.ErrorIs(t, s.Update(ctx, orphan), domain.ErrStudySetNotFound)
}

func TestMemoryStudySetStoreIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStudySetStore()

	set, err := domain.NewStudySet("Source text.")
	require.NoError(t, err)
	card, err := domain.NewFlashcard("Q?", "A.", 1)
	require.NoError(t, err)
	set.Flashcards = []*domain.Flashcard{card}
	require.NoError(t, s.Create(ctx, set))

	// Mutating the caller's copy must not leak into the store.
	card.Question = "mutated"

	got, err := s.GetByID(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q?", got.Flashcards[0].Question)
}
