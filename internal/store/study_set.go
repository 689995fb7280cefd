package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/studygen/studygen-api/internal/domain"
)

// StudySetStore defines the interface for study set persistence.
// The generation core only ever receives text in and hands structured
// records out; this boundary is where the surrounding application keeps
// them between the enqueue call and the status poll.
// Version: 1.0
type StudySetStore interface {
	// Create saves a new study set to the store.
	// Returns validation errors from the domain StudySet if data is invalid.
	Create(ctx context.Context, set *domain.StudySet) error

	// GetByID retrieves a study set by its unique ID.
	// Returns domain.ErrStudySetNotFound if the study set does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySet, error)

	// Update saves changes to an existing study set.
	// Returns domain.ErrStudySetNotFound if the study set does not exist.
	// Returns validation errors if the study set data is invalid.
	Update(ctx context.Context, set *domain.StudySet) error
}
