package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"auction-draft-service/internal/config"
	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/poller"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:            "0",
		RefreshInterval: time.Hour,
		Provider:        "fixture",
		DataDir:         t.TempDir(),
		SessionStore:    "memory",
		League:          config.LeagueConfig{StartingBudget: 200, RosterSize: 13},
	}
}

func TestNewServesCatalogAfterRefresh(t *testing.T) {
	srv, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := srv.refresher.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body catalog.Catalog
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(body.Players) == 0 || body.UpdatedAt == "" {
		t.Fatalf("expected reconciled fixture catalog, got %+v", body)
	}
}

func TestNewReadyAfterRefresh(t *testing.T) {
	srv, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before refresh, got %d", rec.Code)
	}

	if err := srv.refresher.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after refresh, got %d", rec.Code)
	}
}

func TestNewAdminRouteOnlyWithToken(t *testing.T) {
	cfg := testConfig(t)
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/refresh", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without token, got %d", rec.Code)
	}

	cfg.AdminToken = "s3cret"
	srv, err = New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected admin refresh to succeed, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewSessionStoreFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionStore = "fs"
	cfg.DataDir = filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(cfg.DataDir, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected error when the data dir path is a file")
	}
}

type stubHTTPServer struct {
	mu       sync.Mutex
	shutdown bool
	started  chan struct{}
}

func newStubHTTPServer() *stubHTTPServer {
	return &stubHTTPServer{started: make(chan struct{})}
}

func (s *stubHTTPServer) ListenAndServe() error {
	close(s.started)
	return http.ErrServerClosed
}

func (s *stubHTTPServer) Shutdown(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdown = true
	return nil
}

func (s *stubHTTPServer) Addr() string          { return ":0" }
func (s *stubHTTPServer) Handler() http.Handler { return nil }

func (s *stubHTTPServer) wasShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdown
}

type stubRefresher struct {
	mu      sync.Mutex
	started bool
	stopped bool
}

func (r *stubRefresher) Start(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = true
}

func (r *stubRefresher) Stop(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	return nil
}

func (r *stubRefresher) Status() poller.Status             { return poller.Status{} }
func (r *stubRefresher) RefreshOnce(context.Context) error { return nil }

func TestRunShutsDownGracefully(t *testing.T) {
	httpSrv := newStubHTTPServer()
	refresher := &stubRefresher{}
	srv := &Server{
		cfg:        testConfig(t),
		refresher:  refresher,
		httpServer: httpSrv,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	<-httpSrv.started
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	if !httpSrv.wasShutdown() {
		t.Fatal("expected http server shutdown")
	}
	refresher.mu.Lock()
	defer refresher.mu.Unlock()
	if !refresher.started || !refresher.stopped {
		t.Fatalf("expected refresher start and stop, got start=%v stop=%v", refresher.started, refresher.stopped)
	}
}

