package store

import "auction-draft-service/internal/domain/draft"

// SessionStore persists draft sessions by key. Implementations must be safe
// for concurrent use; the draft service serializes writes per session key but
// different sessions may hit the store simultaneously.
type SessionStore interface {
	// Load returns the session for a key. The second result is false when the
	// key has never been saved.
	Load(key string) (draft.Session, bool, error)

	// Save persists the full session state for a key, replacing any previous
	// state.
	Save(key string, session draft.Session) error

	// Delete removes a key's state. Deleting an unknown key is not an error.
	Delete(key string) error

	// Keys lists every persisted session key.
	Keys() ([]string, error)
}
