package memory

import (
	"context"
	"sync"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

type AreaStore struct {
	mu   sync.RWMutex
	data map[string]domain.Area
}

func NewAreaStore() *AreaStore {
	return &AreaStore{data: make(map[string]domain.Area)}
}

func (s *AreaStore) Save(_ context.Context, a domain.Area) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[a.ID] = a
	return nil
}

func (s *AreaStore) Get(_ context.Context, areaID string) (domain.Area, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.data[areaID]
	if !ok {
		return domain.Area{}, &store.NotFoundError{Kind: "area", Key: areaID}
	}
	return a, nil
}

func (s *AreaStore) Find(_ context.Context, areaID string) (domain.Area, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.data[areaID]
	return a, ok, nil
}

func (s *AreaStore) List(_ context.Context) ([]domain.Area, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Area, 0, len(s.data))
	for _, a := range s.data {
		out = append(out, a)
	}
	return out, nil
}
