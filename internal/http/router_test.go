package http_test

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"auction-draft-service/internal/advice"
	appcatalog "auction-draft-service/internal/app/catalog"
	appdraft "auction-draft-service/internal/app/draft"
	"auction-draft-service/internal/config"
	internalhttp "auction-draft-service/internal/http"
	"auction-draft-service/internal/http/handlers"
	"auction-draft-service/internal/metrics"
	"auction-draft-service/internal/store"
)

func newRouter(t *testing.T, admin *handlers.AdminHandler) nethttp.Handler {
	t.Helper()

	league := config.LeagueConfig{StartingBudget: 200, RosterSize: 13}
	catalogSvc := appcatalog.NewService(nil, nil)
	draftSvc := appdraft.NewService(store.NewMemoryStore(), league, nil, metrics.NewRecorder())
	advisor := advice.NewClient(config.AdviceConfig{}, nil, metrics.NewRecorder())
	h := handlers.NewHandler(catalogSvc, draftSvc, advisor, league, nil, nil)
	return internalhttp.NewRouter(h, admin)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := newRouter(t, nil)

	cases := []struct {
		method string
		path   string
	}{
		{nethttp.MethodPost, "/catalog"},
		{nethttp.MethodDelete, "/catalog/search"},
		{nethttp.MethodGet, "/sessions/abc/picks"},
		{nethttp.MethodPut, "/sessions/abc"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != nethttp.StatusMethodNotAllowed {
			t.Fatalf("%s %s: expected 405, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestRouterUnknownPath(t *testing.T) {
	router := newRouter(t, nil)

	req := httptest.NewRequest(nethttp.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouterAdminRouteOptional(t *testing.T) {
	router := newRouter(t, nil)

	req := httptest.NewRequest(nethttp.MethodPost, "/admin/refresh", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404 when admin routes not registered, got %d", rec.Code)
	}

	withAdmin := newRouter(t, handlers.NewAdminHandler(nil, "tok", nil))
	rec = httptest.NewRecorder()
	withAdmin.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodPost, "/admin/refresh", nil))
	if rec.Code != nethttp.StatusUnauthorized {
		t.Fatalf("expected 401 from registered admin route, got %d", rec.Code)
	}
}
