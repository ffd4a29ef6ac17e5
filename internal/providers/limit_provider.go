package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/logging"
)

// rateLimitedProvider wraps a ValuationProvider and enforces a minimum
// interval between calls.
type rateLimitedProvider struct {
	next     ValuationProvider
	interval time.Duration
	logger   *slog.Logger

	mu          sync.Mutex
	nextAllowed time.Time
}

// NewRateLimitedProvider returns a ValuationProvider that spaces calls at
// least the given interval apart so scraper endpoints are never hammered
// during rapid refresh requests. The first call goes through immediately.
func NewRateLimitedProvider(next ValuationProvider, interval time.Duration, logger *slog.Logger) ValuationProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
	}
}

func (p *rateLimitedProvider) Source() catalog.Source {
	if p == nil || p.next == nil {
		return ""
	}
	return p.next.Source()
}

func (p *rateLimitedProvider) FetchValuations(ctx context.Context) ([]catalog.SourceValuation, error) {
	if p == nil || p.next == nil {
		logging.Warn(p.loggerOrNil(), "provider unavailable", slog.String("provider", "rate-limited"))
		return nil, ErrProviderUnavailable
	}
	if err := ctx.Err(); err != nil {
		logging.Warn(p.logger, "rate-limited fetch canceled",
			slog.String(logging.FieldSource, string(p.next.Source())))
		return nil, err
	}
	if wait := p.reserve(); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			logging.Warn(p.logger, "rate-limited fetch canceled",
				slog.String(logging.FieldSource, string(p.next.Source())))
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	logging.Info(p.logger, "rate-limited provider fetch",
		slog.String(logging.FieldSource, string(p.next.Source())))
	return p.next.FetchValuations(ctx)
}

// reserve claims the next fetch slot and returns how long the caller has to
// wait before using it.
func (p *rateLimitedProvider) reserve() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	if now.Before(p.nextAllowed) {
		wait := p.nextAllowed.Sub(now)
		p.nextAllowed = p.nextAllowed.Add(p.interval)
		return wait
	}
	p.nextAllowed = now.Add(p.interval)
	return 0
}

func (p *rateLimitedProvider) loggerOrNil() *slog.Logger {
	if p == nil {
		return nil
	}
	return p.logger
}
