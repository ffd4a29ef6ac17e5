package store

import (
	"os"
	"path/filepath"
	"testing"

	"auction-draft-service/internal/domain/draft"
)

func backends(t *testing.T) map[string]SessionStore {
	t.Helper()

	fsStore, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("fs store: %v", err)
	}
	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]SessionStore{
		"memory": NewMemoryStore(),
		"fs":     fsStore,
		"sqlite": sqliteStore,
	}
}

func sampleSession() draft.Session {
	return draft.Session{
		Picks: []draft.Pick{
			{PlayerName: "Nikola Jokic", BidAmount: 81, PickNumber: 1, Round: 1, DraftedByTeam: "Team A", IsMyPick: true},
		},
		Teams: []draft.Team{
			{Name: "Team A", Budget: 119, IsMyTeam: true},
			{Name: "Team B", Budget: 200},
		},
		TotalPicks:      1,
		TeamsConfigured: true,
		SyncedAt:        "2025-10-12T18:30:05Z",
		MyTeamBudget:    119,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Load("draft-1"); err != nil || ok {
				t.Fatalf("expected miss for fresh key, got ok=%v err=%v", ok, err)
			}

			want := sampleSession()
			if err := s.Save("draft-1", want); err != nil {
				t.Fatalf("save: %v", err)
			}

			got, ok, err := s.Load("draft-1")
			if err != nil || !ok {
				t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
			}
			if len(got.Picks) != 1 || got.Picks[0].PlayerName != "Nikola Jokic" {
				t.Fatalf("unexpected picks %+v", got.Picks)
			}
			if len(got.Teams) != 2 || got.Teams[0].Budget != 119 {
				t.Fatalf("unexpected teams %+v", got.Teams)
			}
			if got.SyncedAt != want.SyncedAt || got.MyTeamBudget != 119 {
				t.Fatalf("unexpected session %+v", got)
			}
		})
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save("draft-1", sampleSession()); err != nil {
				t.Fatalf("save: %v", err)
			}

			updated := sampleSession()
			updated.Picks = append(updated.Picks, draft.Pick{PlayerName: "Luka Doncic", BidAmount: 70, PickNumber: 2, Round: 1, DraftedByTeam: "Team B"})
			updated.TotalPicks = 2
			if err := s.Save("draft-1", updated); err != nil {
				t.Fatalf("save updated: %v", err)
			}

			got, _, err := s.Load("draft-1")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got.TotalPicks != 2 || len(got.Picks) != 2 {
				t.Fatalf("expected replaced state, got %+v", got)
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save("draft-1", sampleSession()); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := s.Delete("draft-1"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok, _ := s.Load("draft-1"); ok {
				t.Fatal("expected key gone after delete")
			}
			if err := s.Delete("never-existed"); err != nil {
				t.Fatalf("deleting unknown key should be a no-op, got %v", err)
			}
		})
	}
}

func TestStoreKeys(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_ = s.Save("beta", sampleSession())
			_ = s.Save("alpha", sampleSession())

			keys, err := s.Keys()
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			if len(keys) != 2 || keys[0] != "alpha" || keys[1] != "beta" {
				t.Fatalf("expected sorted keys, got %v", keys)
			}
		})
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	s := NewMemoryStore()
	original := sampleSession()
	if err := s.Save("draft-1", original); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, _, _ := s.Load("draft-1")
	loaded.Picks[0].PlayerName = "mutated"
	loaded.Teams[0].Budget = 0

	again, _, _ := s.Load("draft-1")
	if again.Picks[0].PlayerName != "Nikola Jokic" || again.Teams[0].Budget != 119 {
		t.Fatal("expected stored state to be isolated from caller mutation")
	}
}

func TestFSStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFSStore(dir)
	if err != nil {
		t.Fatalf("fs store: %v", err)
	}

	if err := s.Save("../evil/key", sampleSession()); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file inside the store dir, got %d", len(entries))
	}
	if entries[0].Name() != ".._evil_key.json" {
		t.Fatalf("unexpected filename %s", entries[0].Name())
	}

	if _, ok, err := s.Load("../evil/key"); err != nil || !ok {
		t.Fatalf("expected sanitized key to round-trip, got ok=%v err=%v", ok, err)
	}
}

func TestFSStoreSkipsIdenticalWrite(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFSStore(dir)
	if err != nil {
		t.Fatalf("fs store: %v", err)
	}

	session := sampleSession()
	if err := s.Save("draft-1", session); err != nil {
		t.Fatalf("save: %v", err)
	}
	path := filepath.Join(dir, "draft-1.json")
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	if err := s.Save("draft-1", session); err != nil {
		t.Fatalf("second save: %v", err)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Fatal("expected identical payload to skip the rewrite")
	}
}
