package feed

import (
	"strings"

	"auction-draft-service/internal/domain/catalog"
)

// mapESPN converts ESPN dump records into source valuations, skipping records
// without a usable name or with a non-positive value.
func mapESPN(entries []espnEntry) []catalog.SourceValuation {
	out := make([]catalog.SourceValuation, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" || e.Value <= 0 {
			continue
		}
		out = append(out, catalog.SourceValuation{
			Source:      catalog.SourceESPN,
			Name:        name,
			Team:        strings.TrimSpace(e.Team),
			Position:    strings.TrimSpace(e.Position),
			Value:       e.Value,
			HeadshotURL: strings.TrimSpace(e.HeadshotURL),
		})
	}
	return out
}

// mapYahoo converts Yahoo dump records into source valuations.
func mapYahoo(entries []yahooEntry) []catalog.SourceValuation {
	out := make([]catalog.SourceValuation, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" || e.Value <= 0 {
			continue
		}
		out = append(out, catalog.SourceValuation{
			Source: catalog.SourceYahoo,
			Name:   name,
			Value:  e.Value,
		})
	}
	return out
}
