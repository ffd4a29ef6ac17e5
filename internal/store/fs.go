package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"auction-draft-service/internal/domain/draft"
)

const sessionFileExt = ".json"

// FSStore persists each session as one JSON file under a base directory.
// Writes go through a temp file and rename so a crash never leaves a
// half-written session behind.
type FSStore struct {
	basePath string
}

// NewFSStore constructs a store rooted at basePath, creating it if needed.
func NewFSStore(basePath string) (*FSStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("session store path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{basePath: basePath}, nil
}

func (s *FSStore) Load(key string) (draft.Session, bool, error) {
	raw, err := os.ReadFile(s.sessionPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return draft.Session{}, false, nil
		}
		return draft.Session{}, false, err
	}

	var session draft.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return draft.Session{}, false, fmt.Errorf("decode session %s: %w", key, err)
	}
	return session, true, nil
}

func (s *FSStore) Save(key string, session draft.Session) error {
	target := s.sessionPath(key)

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func (s *FSStore) Delete(key string) error {
	err := os.Remove(s.sessionPath(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FSStore) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, sessionFileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, sessionFileExt))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FSStore) sessionPath(key string) string {
	return filepath.Join(s.basePath, sanitizeKey(key)+sessionFileExt)
}

// sanitizeKey keeps session filenames flat and filesystem-safe. Keys are
// caller-chosen strings; anything outside [a-zA-Z0-9._-] becomes an underscore.
func sanitizeKey(key string) string {
	if key == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
