package catalog

// Source identifies which scraper collaborator produced a valuation.
type Source string

const (
	SourceESPN  Source = "espn"
	SourceYahoo Source = "yahoo"
)

// SourceValuation is one raw per-source record deposited by a scraper.
// ESPN records carry team/position/headshot metadata; Yahoo records carry
// only a name and a value.
type SourceValuation struct {
	Source      Source  `json:"source"`
	Name        string  `json:"name"`
	Team        string  `json:"team"`
	Position    string  `json:"position"`
	Value       float64 `json:"value"`
	HeadshotURL string  `json:"headshotUrl,omitempty"`
}

// CanonicalPlayer is the deduplicated, identity-resolved representation of one
// player across all source valuations. Identity key is the normalized name;
// there is exactly one CanonicalPlayer per normalized name in a catalog.
type CanonicalPlayer struct {
	Name         string   `json:"name"`
	Team         string   `json:"team"`
	Position     string   `json:"position"`
	AverageValue float64  `json:"avgAuctionValue"`
	EspnValue    float64  `json:"espnAuctionValue"`
	YahooValue   *float64 `json:"yahooAuctionValue"`
	HeadshotURL  string   `json:"headshotUrl,omitempty"`
}

// SourceValues exposes per-source provenance keyed by source. A nil entry
// means the source never matched this player.
func (p CanonicalPlayer) SourceValues() map[Source]*float64 {
	espn := p.EspnValue
	return map[Source]*float64{
		SourceESPN:  &espn,
		SourceYahoo: p.YahooValue,
	}
}

// Catalog is the snapshot written to disk and served to the UI collaborator.
// Players are ordered by average value descending.
type Catalog struct {
	UpdatedAt string            `json:"updatedAt"`
	Players   []CanonicalPlayer `json:"players"`
}
