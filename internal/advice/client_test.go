package advice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-draft-service/internal/config"
	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/domain/draft"
	"auction-draft-service/internal/metrics"
)

func adviceSession() draft.Session {
	return draft.Session{
		Teams: []draft.Team{
			{Name: "Team A", Budget: 119, IsMyTeam: true},
			{Name: "Team B", Budget: 200},
		},
		TeamsConfigured: true,
		MyTeamBudget:    119,
	}
}

func TestRecommendRoundTrip(t *testing.T) {
	var gotBody serviceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("expected bearer auth, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(serviceResponse{
			Content: `Targets below. {"recommendations":[{"name":"Luka Doncic","suggestedPrice":70,"reasoning":"elite usage"}]}`,
		})
	}))
	defer srv.Close()

	rec := metrics.NewRecorder()
	client := NewClient(config.AdviceConfig{BaseURL: srv.URL, APIKey: "secret", Model: "draft-advisor-1"}, nil, rec)

	available := []catalog.CanonicalPlayer{{Name: "Luka Doncic", Team: "DAL", Position: "PG", AverageValue: 72}}
	recs, err := client.Recommend(context.Background(), available, available, adviceSession(), config.LeagueConfig{StartingBudget: 200, RosterSize: 13})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(recs) != 1 || recs[0].Name != "Luka Doncic" || recs[0].SuggestedPrice != 70 {
		t.Fatalf("unexpected recommendations %+v", recs)
	}
	if gotBody.Model != "draft-advisor-1" || gotBody.Prompt == "" {
		t.Fatalf("unexpected request body %+v", gotBody)
	}

	calls, errs := rec.AdviceCalls()
	if calls != 1 || errs != 0 {
		t.Fatalf("expected 1 clean call recorded, got %d/%d", calls, errs)
	}
}

func TestRecommendNotConfigured(t *testing.T) {
	client := NewClient(config.AdviceConfig{}, nil, metrics.NewRecorder())

	_, err := client.Recommend(context.Background(), nil, nil, adviceSession(), config.LeagueConfig{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestRecommendUpstreamFailureRecorded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusBadGateway)
	}))
	defer srv.Close()

	rec := metrics.NewRecorder()
	client := NewClient(config.AdviceConfig{BaseURL: srv.URL}, nil, rec)

	if _, err := client.Recommend(context.Background(), nil, nil, adviceSession(), config.LeagueConfig{}); err == nil {
		t.Fatal("expected error from 502")
	}

	calls, errs := rec.AdviceCalls()
	if calls != 1 || errs != 1 {
		t.Fatalf("expected failed call recorded, got %d/%d", calls, errs)
	}
}

func TestRecommendUnusableContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(serviceResponse{Content: "no JSON here, just vibes"})
	}))
	defer srv.Close()

	client := NewClient(config.AdviceConfig{BaseURL: srv.URL}, nil, metrics.NewRecorder())

	_, err := client.Recommend(context.Background(), nil, nil, adviceSession(), config.LeagueConfig{})
	if !IsParseError(err) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
