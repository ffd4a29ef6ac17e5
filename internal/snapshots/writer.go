package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/timeutil"
)

const defaultRetention = 20

// Writer persists dated catalog snapshots plus a manifest, keeping only the
// most recent retention snapshots on disk. The latest snapshot is also kept
// under a stable name so a restarting server can reload it before the first
// refresh completes.
type Writer struct {
	basePath  string
	retention int
	now       func() time.Time
}

// NewWriter constructs a writer rooted at basePath keeping the last retention
// snapshots.
func NewWriter(basePath string, retention int) *Writer {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &Writer{
		basePath:  basePath,
		retention: retention,
		now:       time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteCatalogSnapshot writes the catalog under a timestamped name, refreshes
// the stable latest snapshot and prunes old snapshots.
func (w *Writer) WriteCatalogSnapshot(snapshot catalog.Catalog) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}

	// Sort a copy; callers may still be serving the slice they handed in.
	snapshot.Players = append([]catalog.CanonicalPlayer{}, snapshot.Players...)
	sort.SliceStable(snapshot.Players, func(i, j int) bool {
		return snapshot.Players[i].AverageValue > snapshot.Players[j].AverageValue
	})

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	stamp := timeutil.FileStamp(w.now())
	target := CatalogSnapshotPath(w.basePath, stamp)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	latest := LatestCatalogPath(w.basePath)
	if existing, err := os.ReadFile(latest); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest()
	}

	if err := writeAtomic(target, data); err != nil {
		return err
	}
	if err := writeAtomic(latest, data); err != nil {
		return err
	}

	return w.updateManifest()
}

// LoadLatest reads the stable latest snapshot. The second result is false when
// no snapshot has been written yet.
func (w *Writer) LoadLatest() (catalog.Catalog, bool, error) {
	raw, err := os.ReadFile(LatestCatalogPath(w.basePath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return catalog.Catalog{}, false, nil
		}
		return catalog.Catalog{}, false, err
	}

	var snapshot catalog.Catalog
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return catalog.Catalog{}, false, fmt.Errorf("decode catalog snapshot: %w", err)
	}
	return snapshot, true, nil
}

func (w *Writer) updateManifest() error {
	manifestPath := filepath.Join(w.basePath, "manifest.json")
	m, _ := readManifest(manifestPath, w.retention)

	stamps, err := w.listStamps()
	if err != nil {
		return err
	}
	pruned, err := w.pruneOldSnapshots(stamps)
	if err != nil {
		return err
	}

	m.Catalog.Stamps = pruned
	m.Catalog.LastRefreshed = w.now().UTC()
	m.Retention.CatalogCount = w.retention

	return writeManifest(w.basePath, m)
}

func (w *Writer) listStamps() ([]string, error) {
	dir := filepath.Join(w.basePath, "catalog")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var stamps []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" || name == latestName {
			continue
		}
		stamps = append(stamps, name[:len(name)-len(".json")])
	}
	sort.Strings(stamps)
	return stamps, nil
}

// pruneOldSnapshots keeps the newest retention stamps; older dated files are
// removed. latest.json is never pruned.
func (w *Writer) pruneOldSnapshots(stamps []string) ([]string, error) {
	if len(stamps) <= w.retention {
		return stamps, nil
	}
	drop := stamps[:len(stamps)-w.retention]
	for _, stamp := range drop {
		_ = os.Remove(CatalogSnapshotPath(w.basePath, stamp))
	}
	return stamps[len(stamps)-w.retention:], nil
}

func writeAtomic(target string, data []byte) error {
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
