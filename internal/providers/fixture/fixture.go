package fixture

import (
	"context"

	"auction-draft-service/internal/domain/catalog"
)

// Provider returns a static set of valuations useful for local testing and
// bootstrapping without live scraper dumps.
type Provider struct {
	source catalog.Source
}

// New creates a fixture provider for one source.
func New(source catalog.Source) *Provider {
	return &Provider{source: source}
}

func (p *Provider) Source() catalog.Source {
	return p.source
}

// FetchValuations returns a deterministic set of example valuations.
func (p *Provider) FetchValuations(ctx context.Context) ([]catalog.SourceValuation, error) {
	_ = ctx
	if p.source == catalog.SourceYahoo {
		return yahooFixtures(), nil
	}
	return espnFixtures(), nil
}

func espnFixtures() []catalog.SourceValuation {
	return []catalog.SourceValuation{
		{Source: catalog.SourceESPN, Name: "Nikola Jokić", Team: "DEN", Position: "C", Value: 81, HeadshotURL: "https://fixtures.local/jokic.png"},
		{Source: catalog.SourceESPN, Name: "Luka Doncic", Team: "DAL", Position: "PG", Value: 74, HeadshotURL: "https://fixtures.local/doncic.png"},
		{Source: catalog.SourceESPN, Name: "Shai Gilgeous-Alexander", Team: "OKC", Position: "PG", Value: 72, HeadshotURL: "https://fixtures.local/sga.png"},
		{Source: catalog.SourceESPN, Name: "Victor Wembanyama", Team: "SAS", Position: "C", Value: 70, HeadshotURL: "https://fixtures.local/wemby.png"},
		{Source: catalog.SourceESPN, Name: "Jayson Tatum", Team: "BOS", Position: "SF", Value: 55, HeadshotURL: "https://fixtures.local/tatum.png"},
		{Source: catalog.SourceESPN, Name: "Tyrese Haliburton", Team: "IND", Position: "PG", Value: 48},
		{Source: catalog.SourceESPN, Name: "Anthony Edwards", Team: "MIN", Position: "SG", Value: 46},
		{Source: catalog.SourceESPN, Name: "Domantas Sabonis", Team: "SAC", Position: "C", Value: 43},
	}
}

func yahooFixtures() []catalog.SourceValuation {
	return []catalog.SourceValuation{
		{Source: catalog.SourceYahoo, Name: "Nikola Jokic", Value: 83},
		{Source: catalog.SourceYahoo, Name: "Luka Dončić", Value: 70},
		{Source: catalog.SourceYahoo, Name: "Shai Gilgeous-Alexander", Value: 75},
		{Source: catalog.SourceYahoo, Name: "Jayson Tatum", Value: 52},
		{Source: catalog.SourceYahoo, Name: "Anthony Edwards", Value: 49},
		{Source: catalog.SourceYahoo, Name: "Trae Young", Value: 38},
	}
}
