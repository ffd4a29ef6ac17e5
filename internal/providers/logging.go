package providers

import (
	"context"
	"log/slog"
	"time"

	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/logging"
	"auction-draft-service/internal/metrics"
)

// instrumentedProvider wraps a ValuationProvider with logging and fetch metrics.
type instrumentedProvider struct {
	next     ValuationProvider
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewInstrumentedProvider records fetch counts, errors and latency for every
// call and logs the outcome.
func NewInstrumentedProvider(next ValuationProvider, logger *slog.Logger, recorder *metrics.Recorder) ValuationProvider {
	return &instrumentedProvider{
		next:     next,
		logger:   logger,
		recorder: recorder,
	}
}

func (p *instrumentedProvider) Source() catalog.Source {
	return p.next.Source()
}

func (p *instrumentedProvider) FetchValuations(ctx context.Context) ([]catalog.SourceValuation, error) {
	source := string(p.next.Source())
	start := time.Now()

	valuations, err := p.next.FetchValuations(ctx)
	elapsed := time.Since(start)
	p.recorder.RecordSourceFetch(source, elapsed, err)

	logger := logging.FromContext(ctx, p.logger)
	if err != nil {
		logging.Error(logger, "source fetch failed", err,
			slog.String(logging.FieldSource, source),
			slog.Duration("elapsed", elapsed),
		)
		return nil, err
	}

	logging.Info(logger, "source fetch succeeded",
		slog.String(logging.FieldSource, source),
		slog.Int(logging.FieldCount, len(valuations)),
		slog.Duration("elapsed", elapsed),
	)
	return valuations, nil
}
