package http

import (
	nethttp "net/http"

	"auction-draft-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(h *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	mux.HandleFunc("GET /catalog", h.Catalog)
	mux.HandleFunc("GET /catalog/available", h.CatalogAvailable)
	mux.HandleFunc("GET /catalog/search", h.CatalogSearch)
	mux.HandleFunc("GET /catalog/export", h.CatalogExport)

	mux.HandleFunc("POST /sessions/{key}/teams", h.ConfigureTeams)
	mux.HandleFunc("POST /sessions/{key}/picks", h.RecordPick)
	mux.HandleFunc("POST /sessions/{key}/recommendations", h.Recommendations)
	mux.HandleFunc("GET /sessions/{key}", h.SessionState)
	mux.HandleFunc("DELETE /sessions/{key}", h.ResetSession)

	if admin != nil {
		mux.HandleFunc("POST /admin/refresh", admin.Refresh)
	}

	return mux
}
