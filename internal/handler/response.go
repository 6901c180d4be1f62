package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/zeitgeist/internal/logger"
	"github.com/freeeve/zeitgeist/internal/service"
	"github.com/freeeve/zeitgeist/pkg/culture"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads and decodes JSON from a request body.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError maps service and game errors onto HTTP statuses.
// Rejected commands carry their reason code so clients can react to it.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var rej *culture.Rejection
	switch {
	case errors.As(err, &rej):
		writeJSON(w, rejectionStatus(rej.Reason), map[string]string{
			"error":  rej.Error(),
			"reason": string(rej.Reason),
		})
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "not your game")
	case errors.Is(err, service.ErrSessionClosed):
		writeError(w, http.StatusGone, "game is no longer live")
	default:
		l := logger.ForRequest(r.Context())
		l.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// rejectionStatus returns 422 for references to things that do not exist and
// 409 for commands that conflict with the current game state.
func rejectionStatus(reason culture.Reason) int {
	switch reason {
	case culture.ReasonUnknownItem, culture.ReasonUnknownRival, culture.ReasonUnknownOption,
		culture.ReasonUnknownMovement, culture.ReasonUnknownRegion, culture.ReasonInvalidStance:
		return http.StatusUnprocessableEntity
	}
	return http.StatusConflict
}
