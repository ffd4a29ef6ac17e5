package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/logging"
)

const (
	defaultRetryAttempts  = 3
	defaultInitialBackoff = 200 * time.Millisecond
)

// retryingProvider wraps a ValuationProvider with exponential backoff.
type retryingProvider struct {
	inner          ValuationProvider
	logger         *slog.Logger
	maxAttempts    int
	initialBackoff time.Duration
	newBackoff     func(ctx context.Context) backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If
// maxAttempts/initial are <= 0, defaults are used.
func NewRetryingProvider(inner ValuationProvider, logger *slog.Logger, maxAttempts int, initial time.Duration) ValuationProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultInitialBackoff
	}
	r := &retryingProvider{
		inner:          inner,
		logger:         logger,
		maxAttempts:    maxAttempts,
		initialBackoff: initial,
	}
	r.newBackoff = r.defaultBackoff
	return r
}

func (r *retryingProvider) Source() catalog.Source {
	return r.inner.Source()
}

func (r *retryingProvider) FetchValuations(ctx context.Context) ([]catalog.SourceValuation, error) {
	var valuations []catalog.SourceValuation

	attempt := 0
	operation := func() error {
		attempt++
		fetched, err := r.inner.FetchValuations(ctx)
		if err != nil {
			return err
		}
		valuations = fetched
		return nil
	}

	notify := func(err error, delay time.Duration) {
		r.logWarn(ctx, "provider fetch retry",
			slog.String(logging.FieldSource, string(r.inner.Source())),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Duration("delay", delay),
			slog.Any("err", err),
		)
	}

	if err := backoff.RetryNotify(operation, r.newBackoff(ctx), notify); err != nil {
		r.logWarn(ctx, "provider fetch failed",
			slog.String(logging.FieldSource, string(r.inner.Source())),
			slog.Int("attempts", attempt),
			slog.Any("err", err),
		)
		return nil, err
	}
	return valuations, nil
}

func (r *retryingProvider) defaultBackoff(ctx context.Context) backoff.BackOff {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = r.initialBackoff
	expo.MaxInterval = 10 * r.initialBackoff
	return backoff.WithContext(backoff.WithMaxRetries(expo, uint64(r.maxAttempts-1)), ctx)
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
