package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/logging"
	"auction-draft-service/internal/metrics"
	"auction-draft-service/internal/providers"
	"auction-draft-service/internal/reconcile"
	"auction-draft-service/internal/timeutil"
)

const defaultInterval = 15 * time.Minute

// CatalogReplacer receives each freshly reconciled catalog.
type CatalogReplacer interface {
	Replace(next catalog.Catalog)
}

// Refresher periodically fetches both valuation feeds, reconciles them and
// swaps the merged catalog into the catalog service.
type Refresher struct {
	primary   providers.ValuationProvider
	secondary providers.ValuationProvider
	target    CatalogReplacer
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the refresher has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Refresher with sane defaults. primary defines the player
// universe; secondary contributes matched values only.
func New(primary, secondary providers.ValuationProvider, target CatalogReplacer, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Refresher{
		primary:   primary,
		secondary: secondary,
		target:    target,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		r.logInfo("refresher started", slog.Int64(logging.FieldDurationMS, r.interval.Milliseconds()))
		// Initial refresh to warm the catalog on boot.
		_ = r.RefreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				r.stopTicker()
				r.logInfo("refresher stopped")
				return
			case <-r.done:
				r.stopTicker()
				r.logInfo("refresher stopped")
				return
			case <-r.ticker.C:
				_ = r.RefreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop(ctx context.Context) error {
	_ = ctx
	r.stopOnce.Do(func() {
		close(r.done)
		r.stopTicker()
	})
	return nil
}

// RefreshOnce runs one fetch-reconcile-swap cycle. It is also called directly
// for operator-triggered rebuilds.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	start := time.Now()
	r.recordAttempt(start)

	primary, err := r.primary.FetchValuations(ctx)
	if err != nil {
		err = fmt.Errorf("fetch %s: %w", r.primary.Source(), err)
		r.logError("refresh failed", err)
		r.recordFailure(err, start)
		return err
	}

	// A missing secondary feed degrades the catalog, it does not block it:
	// primary-only players still get served.
	var secondary []catalog.SourceValuation
	if r.secondary != nil {
		secondary, err = r.secondary.FetchValuations(ctx)
		if err != nil {
			r.logError("secondary feed unavailable, continuing with primary only", err)
			secondary = nil
		}
	}

	result := reconcile.Reconcile(primary, secondary, r.logger)
	r.metrics.RecordReconcile(result.Matched, len(result.SecondaryDropped))

	r.target.Replace(catalog.Catalog{
		UpdatedAt: timeutil.FormatStamp(r.now()),
		Players:   result.Players,
	})

	r.recordSuccess(start)
	r.logInfo("catalog refreshed",
		slog.Int(logging.FieldCount, len(result.Players)),
		slog.Int("matched", result.Matched),
		slog.Int("secondary_dropped", len(result.SecondaryDropped)),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return nil
}

// Status returns a snapshot of the refresher's recent health.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

func (r *Refresher) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
}

func (r *Refresher) logInfo(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *Refresher) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, "error", err)
	}
}

func (r *Refresher) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Refresher) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Refresher) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}
