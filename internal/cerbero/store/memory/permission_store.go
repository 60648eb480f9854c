package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

type PermissionStore struct {
	mu   sync.RWMutex
	data map[string]domain.Permission
}

func NewPermissionStore() *PermissionStore {
	return &PermissionStore{data: make(map[string]domain.Permission)}
}

func (s *PermissionStore) Save(_ context.Context, p domain.Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[p.ID] = p
	return nil
}

func (s *PermissionStore) Get(_ context.Context, permissionID string) (domain.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data[permissionID]
	if !ok {
		return domain.Permission{}, &store.NotFoundError{Kind: "permission", Key: permissionID}
	}
	return p, nil
}

func (s *PermissionStore) FindCurrent(_ context.Context, ownerID, areaID string, today time.Time) (domain.Permission, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.data {
		if p.OwnerID == ownerID && p.AreaID == areaID && p.IsCurrent(today) {
			return p, true, nil
		}
	}
	return domain.Permission{}, false, nil
}

func (s *PermissionStore) List(_ context.Context) ([]domain.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Permission, 0, len(s.data))
	for _, p := range s.data {
		out = append(out, p)
	}
	return out, nil
}
