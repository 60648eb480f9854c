package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
)

// AuditStore is an in-memory append-only log of authentication attempts.
type AuditStore struct {
	mu   sync.Mutex
	recs []domain.AuditRecord
}

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) Append(_ context.Context, rec domain.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	return nil
}

func (s *AuditStore) List(_ context.Context) ([]domain.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditRecord, len(s.recs))
	copy(out, s.recs)
	return out, nil
}

func (s *AuditStore) ListByOwner(_ context.Context, ownerID string) ([]domain.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.AuditRecord
	for _, r := range s.recs {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *AuditStore) ListByArea(_ context.Context, areaID string) ([]domain.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.AuditRecord
	for _, r := range s.recs {
		if r.AreaID == areaID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *AuditStore) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.recs[:0]
	var deleted int64
	for _, r := range s.recs {
		if r.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.recs = kept
	return deleted, nil
}
