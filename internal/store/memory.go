package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/studygen/studygen-api/internal/domain"
)

// MemoryStudySetStore is an in-memory StudySetStore keyed by study set ID.
// Study sets live only for the lifetime of the process; relational
// persistence sits outside this service's boundary.
type MemoryStudySetStore struct {
	mu   sync.RWMutex
	sets map[uuid.UUID]*domain.StudySet
}

// NewMemoryStudySetStore creates an empty MemoryStudySetStore.
func NewMemoryStudySetStore() *MemoryStudySetStore {
	return &MemoryStudySetStore{
		sets: make(map[uuid.UUID]*domain.StudySet),
	}
}

// Create saves a new study set.
func (s *MemoryStudySetStore) Create(ctx context.Context, set *domain.StudySet) error {
	if err := set.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[set.ID] = cloneStudySet(set)
	return nil
}

// GetByID retrieves a study set by ID.
func (s *MemoryStudySetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[id]
	if !ok {
		return nil, domain.ErrStudySetNotFound
	}
	return cloneStudySet(set), nil
}

// Update saves changes to an existing study set.
func (s *MemoryStudySetStore) Update(ctx context.Context, set *domain.StudySet) error {
	if err := set.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sets[set.ID]; !ok {
		return domain.ErrStudySetNotFound
	}
	s.sets[set.ID] = cloneStudySet(set)
	return nil
}

// cloneStudySet copies a study set so callers and the store never share
// mutable slices.
func cloneStudySet(set *domain.StudySet) *domain.StudySet {
	clone := *set
	if set.Flashcards != nil {
		clone.Flashcards = make([]*domain.Flashcard, len(set.Flashcards))
		for i, card := range set.Flashcards {
			c := *card
			clone.Flashcards[i] = &c
		}
	}
	if set.Quiz != nil {
		clone.Quiz = make([]*domain.QuizQuestion, len(set.Quiz))
		for i, q := range set.Quiz {
			qq := *q
			if q.Options != nil {
				qq.Options = append([]string(nil), q.Options...)
			}
			clone.Quiz[i] = &qq
		}
	}
	return &clone
}
