package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"auction-draft-service/internal/apperr"
	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/logging"
	"auction-draft-service/internal/names"
	"auction-draft-service/internal/snapshots"
)

// Service holds the current reconciled catalog and answers availability and
// search queries against it. The catalog is replaced wholesale by the
// refresher; readers always see a consistent snapshot.
type Service struct {
	mu      sync.RWMutex
	current catalog.Catalog
	logger  *slog.Logger
	writer  *snapshots.Writer
}

// NewService constructs a Service. The snapshot writer may be nil; catalog
// persistence is then skipped.
func NewService(logger *slog.Logger, writer *snapshots.Writer) *Service {
	return &Service{
		logger: logger,
		writer: writer,
	}
}

// Replace swaps in a freshly reconciled catalog and persists it.
func (s *Service) Replace(next catalog.Catalog) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	if s.writer != nil {
		if err := s.writer.WriteCatalogSnapshot(next); err != nil {
			logging.Error(s.logger, "catalog snapshot write failed", err)
		}
	}

	logging.Info(s.logger, "catalog replaced",
		slog.Int(logging.FieldCount, len(next.Players)),
		slog.String("updated_at", next.UpdatedAt),
	)
}

// Current returns the catalog with a copied player slice, so callers can
// filter or re-sort without racing the next Replace.
func (s *Service) Current() catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.current
	out.Players = append([]catalog.CanonicalPlayer{}, s.current.Players...)
	return out
}

// Available returns every catalog player not yet drafted. A player is
// considered drafted when any recorded pick name matches it.
func (s *Service) Available(draftedNames []string) []catalog.CanonicalPlayer {
	current := s.Current()

	available := make([]catalog.CanonicalPlayer, 0, len(current.Players))
	for _, player := range current.Players {
		if !isDrafted(player.Name, draftedNames) {
			available = append(available, player)
		}
	}
	return available
}

// Search returns catalog players matching the query, in catalog order.
func (s *Service) Search(query string) ([]catalog.CanonicalPlayer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("q", "search query required")
	}

	current := s.Current()
	matches := make([]catalog.CanonicalPlayer, 0)
	for _, player := range current.Players {
		if names.Match(player.Name, query) {
			matches = append(matches, player)
		}
	}
	return matches, nil
}

// Lookup finds the catalog player a free-text name refers to.
func (s *Service) Lookup(name string) (catalog.CanonicalPlayer, bool) {
	current := s.Current()
	for _, player := range current.Players {
		if names.Match(player.Name, name) {
			return player, true
		}
	}
	return catalog.CanonicalPlayer{}, false
}

// LoadSnapshot restores the last persisted catalog, if any. Used at boot so
// the service is useful before the first refresh completes.
func (s *Service) LoadSnapshot() (bool, error) {
	if s.writer == nil {
		return false, nil
	}
	snapshot, ok, err := s.writer.LoadLatest()
	if err != nil || !ok {
		return false, err
	}

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	logging.Info(s.logger, "catalog restored from snapshot",
		slog.Int(logging.FieldCount, len(snapshot.Players)),
		slog.String("updated_at", snapshot.UpdatedAt),
	)
	return true, nil
}

// ExportCSV writes the catalog as CSV with per-source provenance columns.
func (s *Service) ExportCSV(w io.Writer) error {
	current := s.Current()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "team", "position", "avg_auction_value", "espn_auction_value", "yahoo_auction_value"}); err != nil {
		return err
	}
	for _, p := range current.Players {
		yahoo := ""
		if p.YahooValue != nil {
			yahoo = formatValue(*p.YahooValue)
		}
		record := []string{
			p.Name,
			p.Team,
			p.Position,
			formatValue(p.AverageValue),
			formatValue(p.EspnValue),
			yahoo,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export catalog: %w", err)
	}
	return nil
}

func isDrafted(playerName string, draftedNames []string) bool {
	for _, drafted := range draftedNames {
		if names.Match(playerName, drafted) {
			return true
		}
	}
	return false
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
