package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"auction-draft-service/internal/http/requestutil"
	"auction-draft-service/internal/logging"
)

// AdminHandler exposes operator-only endpoints.
type AdminHandler struct {
	refreshFn func(ctx context.Context) error
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. refreshFn triggers an immediate
// catalog rebuild.
func NewAdminHandler(refreshFn func(ctx context.Context) error, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refreshFn: refreshFn,
		token:     token,
		logger:    logger,
	}
}

// Refresh forces a catalog refresh outside the normal schedule. Guarded by a
// bearer token; returns 401 when missing or wrong.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refreshFn == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	if err := h.refreshFn(r.Context()); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"}, h.logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	header := r.Header.Get("Authorization")
	bearer := strings.TrimPrefix(header, "Bearer ")
	return subtle.ConstantTimeCompare([]byte(bearer), []byte(h.token)) == 1
}
