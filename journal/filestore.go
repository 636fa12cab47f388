package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tripjournal/tripjournal-go/domain"
)

// FileStore is a CredentialStore backed by a single JSON file with 0600
// permissions. It is what cmd/tripctl uses so a login survives across
// invocations, standing in for the mobile app's keychain.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store writing to path. Parent directories are
// created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultCredentialPath returns the conventional credential location under
// the user config dir (e.g. ~/.config/tripjournal/credentials.json).
func DefaultCredentialPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("journal.DefaultCredentialPath: %w", err)
	}
	return filepath.Join(dir, "tripjournal", "credentials.json"), nil
}

// Load reads and decodes the stored credential.
// Returns ErrItemNotFound when the file does not exist and ErrDataConversion
// when it exists but does not hold a valid credential.
func (s *FileStore) Load() (domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Credential{}, ErrItemNotFound
		}
		return domain.Credential{}, fmt.Errorf("journal.FileStore.Load: %w", err)
	}

	var cred domain.Credential
	if err := json.Unmarshal(b, &cred); err != nil || !cred.Valid() {
		return domain.Credential{}, fmt.Errorf("journal.FileStore.Load: %w", ErrDataConversion)
	}
	return cred, nil
}

// Save writes the credential with owner-only permissions, replacing any
// previous one. The write goes through a temp file and rename so a crash
// mid-write never leaves a truncated credential behind.
func (s *FileStore) Save(cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("journal.FileStore.Save: %w", err)
	}

	b, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("journal.FileStore.Save: %w", ErrDataConversion)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("journal.FileStore.Save: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("journal.FileStore.Save: %w", err)
	}
	return nil
}

// Delete removes the credential file. A missing file is not an error.
func (s *FileStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("journal.FileStore.Delete: %w", err)
	}
	return nil
}

// compile-time check: FileStore must satisfy CredentialStore.
var _ CredentialStore = (*FileStore)(nil)
