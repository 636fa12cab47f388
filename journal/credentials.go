package journal

import (
	"errors"

	"github.com/tripjournal/tripjournal-go/domain"
)

// Storage errors surfaced by CredentialStore implementations.
var (
	// ErrItemNotFound is returned by Load when no credential is stored.
	ErrItemNotFound = errors.New("credential not found")

	// ErrDuplicateItem is returned by a store that refuses to overwrite an
	// existing credential. The shipped stores overwrite silently, but the
	// interface admits keychain-style backends that do not.
	ErrDuplicateItem = errors.New("credential already exists")

	// ErrDataConversion is returned when a stored credential cannot be
	// decoded back into a domain.Credential.
	ErrDataConversion = errors.New("credential data conversion failed")
)

// CredentialStore is the secure-storage collaborator: opaque storage for the
// single credential record of the current session. Implementations must make
// each call atomic with respect to the others; beyond that single slot the
// client holds no shared mutable state.
//
// The client constructs stores explicitly and injects them, so tests can
// substitute fakes; nothing in this package reaches for a global.
type CredentialStore interface {
	// Load returns the stored credential, or ErrItemNotFound when absent.
	Load() (domain.Credential, error)

	// Save stores the credential, replacing any previous one.
	Save(domain.Credential) error

	// Delete removes the stored credential. Deleting when nothing is stored
	// is not an error.
	Delete() error
}
