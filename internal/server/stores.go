package server

import (
	"io"
	"log/slog"
	"path/filepath"

	"auction-draft-service/internal/config"
	"auction-draft-service/internal/logging"
	"auction-draft-service/internal/store"
)

// buildSessionStore selects the session persistence backend. The returned
// closer is nil when the backend holds no resources.
func buildSessionStore(cfg config.Config, logger *slog.Logger) (store.SessionStore, io.Closer, error) {
	switch cfg.SessionStore {
	case "memory":
		return store.NewMemoryStore(), nil, nil
	case "sqlite":
		path := cfg.SessionDBPath
		if path == "" {
			path = filepath.Join(cfg.DataDir, "sessions.db")
		}
		s, err := store.NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case "fs", "":
		s, err := store.NewFSStore(filepath.Join(cfg.DataDir, "sessions"))
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	default:
		logging.Warn(logger, "unknown session store, falling back to fs",
			slog.String("store", cfg.SessionStore))
		s, err := store.NewFSStore(filepath.Join(cfg.DataDir, "sessions"))
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	}
}
