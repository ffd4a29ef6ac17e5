package providers

import (
	"context"

	"auction-draft-service/internal/domain/catalog"
)

// ValuationProvider defines how one scraper collaborator's auction values are
// fetched and normalized into source valuations. Implementations must be safe
// for concurrent use by the refresher and ad-hoc rebuild requests.
type ValuationProvider interface {
	// Source identifies which feed this provider serves.
	Source() catalog.Source

	// FetchValuations returns every valuation the source currently exposes.
	FetchValuations(ctx context.Context) ([]catalog.SourceValuation, error)
}
