package memory

import (
	"context"
	"sync"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

type pinKey struct {
	ownerID string
	areaID  string
}

// PINStore keeps area PINs keyed by (owner, area), with an index of PIN
// IDs so the ID stays globally unique across pairs.
type PINStore struct {
	mu     sync.RWMutex
	byPair map[pinKey]domain.PIN
	byID   map[string]pinKey
}

func NewPINStore() *PINStore {
	return &PINStore{
		byPair: make(map[pinKey]domain.PIN),
		byID:   make(map[string]pinKey),
	}
}

func (s *PINStore) Save(_ context.Context, p domain.PIN) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pinKey{ownerID: p.OwnerID, areaID: p.AreaID}
	if held, ok := s.byID[p.ID]; ok && held != key {
		return &store.ConflictError{Kind: "pin", Key: p.ID, ExistingOwner: held.ownerID}
	}
	// Replacing the pair's PIN retires its previous ID.
	if prev, ok := s.byPair[key]; ok && prev.ID != p.ID {
		delete(s.byID, prev.ID)
	}

	s.byPair[key] = p
	s.byID[p.ID] = key
	return nil
}

func (s *PINStore) Get(_ context.Context, ownerID, areaID string) (domain.PIN, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byPair[pinKey{ownerID: ownerID, areaID: areaID}]
	if !ok {
		return domain.PIN{}, &store.NotFoundError{Kind: "pin", Key: ownerID + "/" + areaID}
	}
	return p, nil
}

// Update runs fn under the write lock; see CredentialStore.Update for the
// read-modify-write contract.
func (s *PINStore) Update(_ context.Context, ownerID, areaID string, fn func(*domain.PIN) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pinKey{ownerID: ownerID, areaID: areaID}
	p, ok := s.byPair[key]
	if !ok {
		return &store.NotFoundError{Kind: "pin", Key: ownerID + "/" + areaID}
	}
	err := fn(&p)
	s.byPair[key] = p
	return err
}

func (s *PINStore) List(_ context.Context) ([]domain.PIN, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PIN, 0, len(s.byPair))
	for _, p := range s.byPair {
		out = append(out, p)
	}
	return out, nil
}
