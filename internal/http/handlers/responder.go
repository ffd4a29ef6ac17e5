package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"auction-draft-service/internal/advice"
	"auction-draft-service/internal/apperr"
	"auction-draft-service/internal/http/middleware"
	"auction-draft-service/internal/logging"
	"auction-draft-service/internal/providers"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps service-layer error types onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	switch {
	case apperr.IsValidation(err):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	case apperr.IsNotFound(err):
		writeError(w, r, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, advice.ErrNotConfigured):
		writeError(w, r, http.StatusServiceUnavailable, err.Error(), logger)
	case advice.IsParseError(err):
		writeError(w, r, http.StatusBadGateway, err.Error(), logger)
	default:
		if _, ok := providers.AsUpstreamError(err); ok {
			writeError(w, r, http.StatusBadGateway, err.Error(), logger)
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal error", logger)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
