package memory

import (
	"context"
	"sync"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

// CredentialStore keeps RFID credentials keyed by serial, with a reverse
// owner index so serial<->owner uniqueness can be checked both ways.
type CredentialStore struct {
	mu       sync.RWMutex
	bySerial map[string]domain.Credential
	byOwner  map[string]string // owner ID -> serial
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		bySerial: make(map[string]domain.Credential),
		byOwner:  make(map[string]string),
	}
}

func (s *CredentialStore) Save(_ context.Context, c domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.bySerial[c.Serial]; ok && existing.OwnerID != c.OwnerID {
		return &store.ConflictError{Kind: "credential", Key: c.Serial, ExistingOwner: existing.OwnerID}
	}
	if serial, ok := s.byOwner[c.OwnerID]; ok && serial != c.Serial {
		return &store.ConflictError{Kind: "credential", Key: c.OwnerID, ExistingOwner: serial}
	}

	s.bySerial[c.Serial] = c
	s.byOwner[c.OwnerID] = c.Serial
	return nil
}

func (s *CredentialStore) Get(_ context.Context, serial string) (domain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.bySerial[serial]
	if !ok {
		return domain.Credential{}, &store.NotFoundError{Kind: "credential", Key: serial}
	}
	return c, nil
}

// Update runs fn on the stored credential while holding the write lock,
// making the read-modify-write atomic across concurrent access attempts.
// The mutated value is kept even when fn reports an error.
func (s *CredentialStore) Update(_ context.Context, serial string, fn func(*domain.Credential) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.bySerial[serial]
	if !ok {
		return &store.NotFoundError{Kind: "credential", Key: serial}
	}
	err := fn(&c)
	s.bySerial[serial] = c
	return err
}

func (s *CredentialStore) List(_ context.Context) ([]domain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Credential, 0, len(s.bySerial))
	for _, c := range s.bySerial {
		out = append(out, c)
	}
	return out, nil
}
