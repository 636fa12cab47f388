package journal

import (
	"sync"

	"github.com/tripjournal/tripjournal-go/domain"
)

// MemoryStore is an in-memory CredentialStore. It is the default for a
// client constructed without WithCredentialStore and the natural choice for
// tests: the credential lives exactly as long as the process.
type MemoryStore struct {
	mu   sync.Mutex
	cred domain.Credential
	set  bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored credential, or ErrItemNotFound when absent.
func (s *MemoryStore) Load() (domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return domain.Credential{}, ErrItemNotFound
	}
	return s.cred, nil
}

// Save stores the credential, replacing any previous one.
func (s *MemoryStore) Save(cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	s.set = true
	return nil
}

// Delete removes the stored credential.
func (s *MemoryStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = domain.Credential{}
	s.set = false
	return nil
}

// compile-time check: MemoryStore must satisfy CredentialStore.
var _ CredentialStore = (*MemoryStore)(nil)
