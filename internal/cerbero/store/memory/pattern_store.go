package memory

import (
	"context"
	"sync"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

// PatternStore keeps one behavioral pattern per owner, with an ID index
// enforcing global pattern-ID uniqueness.
type PatternStore struct {
	mu      sync.RWMutex
	byOwner map[string]domain.Pattern
	byID    map[string]string // pattern ID -> owner ID
}

func NewPatternStore() *PatternStore {
	return &PatternStore{
		byOwner: make(map[string]domain.Pattern),
		byID:    make(map[string]string),
	}
}

func (s *PatternStore) Save(_ context.Context, p domain.Pattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.byID[p.ID]; ok && owner != p.OwnerID {
		return &store.ConflictError{Kind: "pattern", Key: p.ID, ExistingOwner: owner}
	}
	// Re-enrollment retires the owner's previous pattern ID.
	if prev, ok := s.byOwner[p.OwnerID]; ok && prev.ID != p.ID {
		delete(s.byID, prev.ID)
	}

	s.byOwner[p.OwnerID] = p
	s.byID[p.ID] = p.OwnerID
	return nil
}

func (s *PatternStore) Get(_ context.Context, ownerID string) (domain.Pattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byOwner[ownerID]
	if !ok {
		return domain.Pattern{}, &store.NotFoundError{Kind: "pattern", Key: ownerID}
	}
	return p, nil
}

func (s *PatternStore) List(_ context.Context) ([]domain.Pattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Pattern, 0, len(s.byOwner))
	for _, p := range s.byOwner {
		out = append(out, p)
	}
	return out, nil
}
