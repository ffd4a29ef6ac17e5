package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-draft-service/internal/http/handlers"
)

func doRefresh(t *testing.T, admin *handlers.AdminHandler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	admin.Refresh(rec, req)
	return rec
}

func TestAdminRefresh(t *testing.T) {
	calls := 0
	refresh := func(ctx context.Context) error {
		calls++
		return nil
	}
	admin := handlers.NewAdminHandler(refresh, "s3cret", nil)

	rec := doRefresh(t, admin, "s3cret")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if calls != 1 {
		t.Fatalf("expected one refresh call, got %d", calls)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "refreshed" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestAdminRefreshUnauthorized(t *testing.T) {
	refresh := func(ctx context.Context) error {
		t.Fatal("refresh must not run unauthorized")
		return nil
	}
	admin := handlers.NewAdminHandler(refresh, "s3cret", nil)

	cases := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"wrong token", "guess"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := doRefresh(t, admin, tc.token); rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAdminRefreshDisabledWithoutToken(t *testing.T) {
	// An empty configured token means the endpoint is locked, not open.
	admin := handlers.NewAdminHandler(func(ctx context.Context) error { return nil }, "", nil)

	if rec := doRefresh(t, admin, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with no token configured, got %d", rec.Code)
	}
}

func TestAdminRefreshNotConfigured(t *testing.T) {
	admin := handlers.NewAdminHandler(nil, "s3cret", nil)

	if rec := doRefresh(t, admin, "s3cret"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without refresh func, got %d", rec.Code)
	}
}

func TestAdminRefreshFailure(t *testing.T) {
	refresh := func(ctx context.Context) error { return errors.New("primary feed down") }
	admin := handlers.NewAdminHandler(refresh, "s3cret", nil)

	if rec := doRefresh(t, admin, "s3cret"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on refresh failure, got %d", rec.Code)
	}
}
