package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/metrics"
	"auction-draft-service/internal/testutil"
)

type stubProvider struct {
	source catalog.Source
	vals   []catalog.SourceValuation
	err    error
	calls  int
}

func (s *stubProvider) Source() catalog.Source { return s.source }

func (s *stubProvider) FetchValuations(ctx context.Context) ([]catalog.SourceValuation, error) {
	_ = ctx
	s.calls++
	return s.vals, s.err
}

type captureTarget struct {
	mu       sync.Mutex
	catalogs []catalog.Catalog
}

func (c *captureTarget) Replace(next catalog.Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalogs = append(c.catalogs, next)
}

func (c *captureTarget) last() (catalog.Catalog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.catalogs) == 0 {
		return catalog.Catalog{}, false
	}
	return c.catalogs[len(c.catalogs)-1], true
}

func espnStub() *stubProvider {
	return &stubProvider{
		source: catalog.SourceESPN,
		vals: []catalog.SourceValuation{
			{Source: catalog.SourceESPN, Name: "Nikola Jokic", Team: "DEN", Position: "C", Value: 80},
			{Source: catalog.SourceESPN, Name: "Jayson Tatum", Team: "BOS", Position: "SF", Value: 40},
		},
	}
}

func yahooStub() *stubProvider {
	return &stubProvider{
		source: catalog.SourceYahoo,
		vals: []catalog.SourceValuation{
			{Source: catalog.SourceYahoo, Name: "Nikola Jokic", Value: 60},
		},
	}
}

func TestRefreshOnceReconcilesAndSwaps(t *testing.T) {
	target := &captureTarget{}
	rec := metrics.NewRecorder()
	r := New(espnStub(), yahooStub(), target, nil, rec, time.Hour)
	r.now = testutil.NowAt(testutil.MustParseRFC3339("2025-10-12T18:30:05Z"))

	if err := r.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	got, ok := target.last()
	if !ok {
		t.Fatal("expected catalog swap")
	}
	if got.UpdatedAt != "2025-10-12T18:30:05Z" {
		t.Fatalf("unexpected updatedAt %s", got.UpdatedAt)
	}
	if len(got.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(got.Players))
	}
	if got.Players[0].Name != "Nikola Jokic" || got.Players[0].AverageValue != 70.0 {
		t.Fatalf("expected matched average 70.0, got %+v", got.Players[0])
	}
	if rec.ReconcileRuns() != 1 {
		t.Fatalf("expected reconcile recorded, got %d", rec.ReconcileRuns())
	}

	status := r.Status()
	if !status.IsReady() || status.ConsecutiveFailures != 0 {
		t.Fatalf("expected ready status, got %+v", status)
	}
}

func TestRefreshOnceSurvivesSecondaryFailure(t *testing.T) {
	target := &captureTarget{}
	yahoo := yahooStub()
	yahoo.err = errors.New("scraper down")
	r := New(espnStub(), yahoo, target, nil, metrics.NewRecorder(), time.Hour)

	if err := r.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("expected primary-only refresh to succeed, got %v", err)
	}

	got, ok := target.last()
	if !ok || len(got.Players) != 2 {
		t.Fatalf("expected primary-only catalog, got %+v", got)
	}
	if got.Players[0].YahooValue != nil {
		t.Fatal("expected no yahoo values when secondary feed is down")
	}
	if !r.Status().IsReady() {
		t.Fatalf("expected ready status, got %+v", r.Status())
	}
}

func TestRefreshOncePrimaryFailure(t *testing.T) {
	target := &captureTarget{}
	espn := espnStub()
	espn.err = errors.New("boom")
	r := New(espn, yahooStub(), target, nil, metrics.NewRecorder(), time.Hour)

	if err := r.RefreshOnce(context.Background()); err == nil {
		t.Fatal("expected error when primary feed fails")
	}
	if _, ok := target.last(); ok {
		t.Fatal("expected no catalog swap on primary failure")
	}

	status := r.Status()
	if status.IsReady() || status.ConsecutiveFailures != 1 || status.LastError == "" {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestStatusReadyThreshold(t *testing.T) {
	s := Status{LastSuccess: time.Now(), ConsecutiveFailures: 2}
	if !s.IsReady() {
		t.Fatal("two failures after a success should still be ready")
	}
	s.ConsecutiveFailures = 3
	if s.IsReady() {
		t.Fatal("three consecutive failures should not be ready")
	}
	if (Status{}).IsReady() {
		t.Fatal("no success yet should not be ready")
	}
}

func TestStartRunsInitialRefreshAndStops(t *testing.T) {
	target := &captureTarget{}
	espn := espnStub()
	r := New(espn, yahooStub(), target, nil, metrics.NewRecorder(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r.Start(ctx)

	deadline := time.After(2 * time.Second)
	for {
		if _, ok := target.last(); ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("expected initial refresh after Start")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	// Stop twice is safe.
	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}
