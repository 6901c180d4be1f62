package handler

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/zeitgeist/internal/auth"
)

// AuthHandler issues and refreshes session tokens.
type AuthHandler struct {
	jwtMgr  *auth.JWTManager
	devMode bool
}

// NewAuthHandler creates an AuthHandler. DevLogin only answers when devMode is set.
func NewAuthHandler(jwtMgr *auth.JWTManager, devMode bool) *AuthHandler {
	return &AuthHandler{jwtMgr: jwtMgr, devMode: devMode}
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.jwtMgr.Refresh(req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

// DevLogin returns a token pair for a player named by the name parameter.
// The same name always maps to the same player.
func (h *AuthHandler) DevLogin(w http.ResponseWriter, r *http.Request) {
	if !h.devMode {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing name parameter")
		return
	}

	playerID := "dev-" + strings.ToLower(name)
	tokens, err := h.jwtMgr.Issue(playerID, name)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to issue dev tokens")
		writeError(w, http.StatusInternalServerError, "failed to generate tokens")
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}
