package memory

import (
	"context"
	"sync"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

type StudentStore struct {
	mu   sync.RWMutex
	data map[string]domain.Student
}

func NewStudentStore() *StudentStore {
	return &StudentStore{data: make(map[string]domain.Student)}
}

func (s *StudentStore) Save(_ context.Context, st domain.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[st.NationalID] = st
	return nil
}

func (s *StudentStore) Get(_ context.Context, nationalID string) (domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.data[nationalID]
	if !ok {
		return domain.Student{}, &store.NotFoundError{Kind: "student", Key: nationalID}
	}
	return st, nil
}

func (s *StudentStore) Find(_ context.Context, nationalID string) (domain.Student, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.data[nationalID]
	return st, ok, nil
}

func (s *StudentStore) List(_ context.Context) ([]domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Student, 0, len(s.data))
	for _, st := range s.data {
		out = append(out, st)
	}
	return out, nil
}
