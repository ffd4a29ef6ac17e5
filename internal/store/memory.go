package store

import (
	"sort"
	"sync"

	"auction-draft-service/internal/domain/draft"
)

// MemoryStore keeps sessions in memory. State is lost on restart, which is
// acceptable for tests and throwaway drafts.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]draft.Session
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]draft.Session),
	}
}

func (s *MemoryStore) Load(key string) (draft.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[key]
	if !ok {
		return draft.Session{}, false, nil
	}
	return cloneSession(session), true, nil
}

func (s *MemoryStore) Save(key string, session draft.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[key] = cloneSession(session)
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key)
	return nil
}

func (s *MemoryStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.sessions))
	for k := range s.sessions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// cloneSession copies the slices so callers cannot mutate stored state.
// Empty slices stay empty rather than becoming nil so JSON round-trips as [].
func cloneSession(session draft.Session) draft.Session {
	out := session
	if session.Picks != nil {
		out.Picks = append([]draft.Pick{}, session.Picks...)
	}
	if session.Teams != nil {
		out.Teams = append([]draft.Team{}, session.Teams...)
	}
	return out
}
