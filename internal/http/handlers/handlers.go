package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"auction-draft-service/internal/advice"
	appcatalog "auction-draft-service/internal/app/catalog"
	appdraft "auction-draft-service/internal/app/draft"
	"auction-draft-service/internal/config"
	"auction-draft-service/internal/domain/draft"
	"auction-draft-service/internal/poller"
)

const maxBodyBytes = 1 << 20

// Handler wires HTTP routes to the catalog and draft services.
type Handler struct {
	catalog  *appcatalog.Service
	draft    *appdraft.Service
	advisor  *advice.Client
	league   config.LeagueConfig
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler.
func NewHandler(catalogSvc *appcatalog.Service, draftSvc *appdraft.Service, advisor *advice.Client, league config.LeagueConfig, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		catalog:  catalogSvc,
		draft:    draftSvc,
		advisor:  advisor,
		league:   league,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic based on refresher health.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil || h.statusFn().IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := h.statusFn().LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Catalog serves the full reconciled catalog.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Current(), h.logger)
}

// CatalogAvailable serves the catalog players not yet drafted in a session.
// Without a session parameter the full catalog is available by definition.
func (h *Handler) CatalogAvailable(w http.ResponseWriter, r *http.Request) {
	var drafted []string
	if key := r.URL.Query().Get("session"); key != "" {
		session, err := h.draft.State(key)
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		drafted = session.DraftedNames()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"players": h.catalog.Available(drafted),
	}, h.logger)
}

// CatalogSearch serves players whose names match the q parameter.
func (h *Handler) CatalogSearch(w http.ResponseWriter, r *http.Request) {
	matches, err := h.catalog.Search(r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": matches}, h.logger)
}

// CatalogExport serves the catalog as a CSV download.
func (h *Handler) CatalogExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="auction_values.csv"`)
	if err := h.catalog.ExportCSV(w); err != nil {
		loggerFromContext(r, h.logger).Error("catalog export failed", "err", err)
	}
}

type teamsRequest struct {
	Teams []appdraft.TeamSetup `json:"teams"`
}

type sessionResponse struct {
	Key     string        `json:"key"`
	Session draft.Session `json:"session"`
}

// ConfigureTeams sets up the franchises for a session.
func (h *Handler) ConfigureTeams(w http.ResponseWriter, r *http.Request) {
	var req teamsRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	key, session, err := h.draft.Initialize(r.PathValue("key"), req.Teams)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Key: key, Session: session}, h.logger)
}

// RecordPick appends one auction win to a session.
func (h *Handler) RecordPick(w http.ResponseWriter, r *http.Request) {
	var req appdraft.PickRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	session, err := h.draft.RecordPick(r.PathValue("key"), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, session, h.logger)
}

// SessionState serves a session's current state.
func (h *Handler) SessionState(w http.ResponseWriter, r *http.Request) {
	session, err := h.draft.State(r.PathValue("key"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, session, h.logger)
}

// ResetSession discards a session's state.
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	if err := h.draft.Reset(r.PathValue("key")); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Recommendations asks the advice service who to target next for a session.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	session, err := h.draft.State(r.PathValue("key"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	all := h.catalog.Current().Players
	available := h.catalog.Available(session.DraftedNames())
	recs, err := h.advisor.Recommend(r.Context(), all, available, session, h.league)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs}, h.logger)
}

// decodeBody reads and decodes a JSON request body, replying 400 on garbage.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, logger *slog.Logger) bool {
	defer r.Body.Close()

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, r, http.StatusBadRequest, "request body required", logger)
			return false
		}
		writeError(w, r, http.StatusBadRequest, "malformed request body", logger)
		return false
	}
	return true
}
