package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizhub/class-notifier/internal/domain"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// mapError translates domain sentinel errors to HTTP status codes.
// All mapping lives here so individual handlers stay concise.
//
// Missing fields and attachment problems are caller-correctable (400).
// An empty roster is "not found" (404), distinct from the store being
// unreachable (503). Transport failures are plain server errors (500).
func mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrAttachmentNotFound),
		errors.Is(err, domain.ErrAttachmentTooLarge):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoRecipients):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
