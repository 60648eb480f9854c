package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

// AccessStore is an in-memory append-only log of granted entries.
type AccessStore struct {
	mu   sync.Mutex
	recs []domain.AccessRecord
}

func NewAccessStore() *AccessStore {
	return &AccessStore{}
}

func (s *AccessStore) Append(_ context.Context, rec domain.AccessRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	return nil
}

func (s *AccessStore) List(_ context.Context) ([]domain.AccessRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AccessRecord, len(s.recs))
	copy(out, s.recs)
	return out, nil
}

func (s *AccessStore) CloseExit(_ context.Context, accessID string, exitedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recs {
		if s.recs[i].ID == accessID {
			t := exitedAt
			s.recs[i].ExitedAt = &t
			return nil
		}
	}
	return &store.NotFoundError{Kind: "access", Key: accessID}
}

func (s *AccessStore) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.recs[:0]
	var deleted int64
	for _, r := range s.recs {
		if r.EnteredAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.recs = kept
	return deleted, nil
}
