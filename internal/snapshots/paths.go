package snapshots

import (
	"fmt"
	"path/filepath"
)

const latestName = "latest.json"

// CatalogSnapshotPath builds the path to a dated catalog snapshot.
func CatalogSnapshotPath(basePath, stamp string) string {
	return filepath.Join(basePath, "catalog", fmt.Sprintf("%s.json", stamp))
}

// LatestCatalogPath builds the path to the always-current catalog snapshot.
func LatestCatalogPath(basePath string) string {
	return filepath.Join(basePath, "catalog", latestName)
}
