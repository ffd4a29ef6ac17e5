// Package reconcile merges per-source valuation lists into the canonical
// player catalog. The primary source defines the player universe; secondary
// records that never match a primary player are reported, not merged.
package reconcile

import (
	"log/slog"
	"math"
	"sort"

	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/logging"
	"auction-draft-service/internal/names"
)

// Result carries the merged catalog plus match bookkeeping for operator
// visibility and metrics.
type Result struct {
	Players          []catalog.CanonicalPlayer
	Matched          int
	PrimaryOnly      int
	SecondaryDropped []string
}

// Reconcile merges primary (ESPN) and secondary (Yahoo) valuations into one
// CanonicalPlayer per normalized name, averaging matched values to one
// decimal; primary-only players keep their value untouched. Output is
// sorted by average value descending; ties keep primary
// input order. Inputs are never mutated. Duplicate normalized names within
// one source collapse to the last-seen entry.
func Reconcile(primary, secondary []catalog.SourceValuation, logger *slog.Logger) Result {
	secondaryByName := make(map[string]float64, len(secondary))
	for _, s := range secondary {
		secondaryByName[names.Normalize(s.Name)] = s.Value
	}

	players := make([]catalog.CanonicalPlayer, 0, len(primary))
	indexByName := make(map[string]int, len(primary))
	consumed := make(map[string]bool, len(secondary))
	matched := 0

	for _, p := range primary {
		key := names.Normalize(p.Name)
		player := catalog.CanonicalPlayer{
			Name:         p.Name,
			Team:         p.Team,
			Position:     p.Position,
			AverageValue: p.Value,
			EspnValue:    p.Value,
			HeadshotURL:  p.HeadshotURL,
		}
		if sv, ok := secondaryByName[key]; ok {
			v := sv
			player.YahooValue = &v
			player.AverageValue = round1((p.Value + sv) / 2)
			consumed[key] = true
		}

		if i, ok := indexByName[key]; ok {
			// Last-write-wins for duplicates, keeping the first slot so
			// tie ordering stays stable.
			if players[i].YahooValue != nil && player.YahooValue == nil {
				matched--
			} else if players[i].YahooValue == nil && player.YahooValue != nil {
				matched++
			}
			players[i] = player
			continue
		}
		indexByName[key] = len(players)
		players = append(players, player)
		if player.YahooValue != nil {
			matched++
		}
	}

	var dropped []string
	for _, s := range secondary {
		key := names.Normalize(s.Name)
		if !consumed[key] {
			dropped = append(dropped, s.Name)
			consumed[key] = true
		}
	}
	if len(dropped) > 0 {
		logging.Warn(logger, "secondary valuations had no primary match",
			slog.Int("count", len(dropped)))
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].AverageValue > players[j].AverageValue
	})

	return Result{
		Players:          players,
		Matched:          matched,
		PrimaryOnly:      len(players) - matched,
		SecondaryDropped: dropped,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
