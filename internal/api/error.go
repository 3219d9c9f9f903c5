package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lockuplabs/token-lockup-service/internal/db"
	"github.com/lockuplabs/token-lockup-service/internal/lockup"
	"github.com/lockuplabs/token-lockup-service/internal/services"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Error().Err(err).Msg("failed to encode response body")
		}
	}
}

// writeError maps domain errors onto HTTP status codes. Unrecognized errors
// are logged and reported as 500 without leaking internals.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, lockup.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case db.IsNotFoundError(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, lockup.ErrAlreadyInitialized),
		errors.Is(err, lockup.ErrAlreadyUnlocked):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, lockup.ErrInvalidSchedule),
		errors.Is(err, lockup.ErrInvalidUnlockKey),
		errors.Is(err, services.ErrInvalidArgument),
		errors.Is(err, services.ErrVariantMismatch):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}
