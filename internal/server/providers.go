package server

import (
	"log/slog"
	"net/http"
	"time"

	"auction-draft-service/internal/config"
	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/logging"
	"auction-draft-service/internal/metrics"
	"auction-draft-service/internal/providers"
	"auction-draft-service/internal/providers/feed"
	"auction-draft-service/internal/providers/fixture"
)

// feedRateLimit spaces calls to a scraper HTTP endpoint. File-backed and
// fixture providers are exempt; re-reading a local dump is free.
const feedRateLimit = time.Minute

// providerFactory assembles per-source providers with shared wrappers
// (rate limit + retry + instrumentation).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: recorder}
}

// build returns the primary (ESPN) and secondary (Yahoo) valuation providers
// for the configured mode.
func (f providerFactory) build(cfg config.Config) (primary, secondary providers.ValuationProvider) {
	switch cfg.Provider {
	case "fixture", "":
		primary = fixture.New(catalog.SourceESPN)
		secondary = fixture.New(catalog.SourceYahoo)
	case "feed":
		primary = f.feedProvider(feed.Config{
			Source:     catalog.SourceESPN,
			URL:        cfg.Sources.EspnURL,
			Path:       cfg.Sources.EspnPath,
			HTTPClient: feedHTTPClient(cfg.Sources.Timeout),
		})
		secondary = f.feedProvider(feed.Config{
			Source:     catalog.SourceYahoo,
			URL:        cfg.Sources.YahooURL,
			Path:       cfg.Sources.YahooPath,
			HTTPClient: feedHTTPClient(cfg.Sources.Timeout),
		})
	default:
		logging.Warn(f.logger, "unknown provider, falling back to fixtures",
			slog.String("provider", cfg.Provider))
		primary = fixture.New(catalog.SourceESPN)
		secondary = fixture.New(catalog.SourceYahoo)
	}

	return f.wrap(primary), f.wrap(secondary)
}

// feedProvider rate-limits URL-backed feeds before the shared wrappers go on.
func (f providerFactory) feedProvider(cfg feed.Config) providers.ValuationProvider {
	var p providers.ValuationProvider = feed.NewClient(cfg)
	if cfg.URL != "" {
		p = providers.NewRateLimitedProvider(p, feedRateLimit, f.logger)
	}
	return p
}

func (f providerFactory) wrap(p providers.ValuationProvider) providers.ValuationProvider {
	retried := providers.NewRetryingProvider(p, f.logger, 0, 0)
	return providers.NewInstrumentedProvider(retried, f.logger, f.metrics)
}

func feedHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		return nil
	}
	return &http.Client{Timeout: timeout}
}
