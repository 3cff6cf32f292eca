package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/IAN-www1/MOOBILE/internal/paypal"
	"github.com/IAN-www1/MOOBILE/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError sends the {"error": ...} envelope used across the API.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeMessage sends the {"message": ...} envelope.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// respondStoreError translates a store/upstream error into the taxonomy:
// NotFound → 404, Conflict → 409, upstream → 502, anything else → logged 500
// with a generic message. No raw error text reaches the caller on 5xx.
func respondStoreError(w http.ResponseWriter, err error, notFoundMsg string) {
	var upstream *paypal.UpstreamError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	case errors.As(err, &upstream):
		slog.Error("Upstream call failed", "op", upstream.Op, "status", upstream.Status)
		writeError(w, http.StatusBadGateway, "upstream payment service error")
	default:
		slog.Error("Internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
