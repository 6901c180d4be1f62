package handler

import (
	"net/http"
	"strconv"

	"github.com/freeeve/zeitgeist/internal/auth"
	"github.com/freeeve/zeitgeist/internal/service"
	"github.com/freeeve/zeitgeist/pkg/culture"
)

// GameHandler handles game session endpoints.
type GameHandler struct {
	gameSvc *service.GameService
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(gameSvc *service.GameService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc}
}

// CreateGame handles POST /api/v1/games
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	playerID := auth.PlayerIDFromContext(r.Context())
	var req struct {
		MovementID    string `json:"movement_id"`
		StartRegionID string `json:"start_region_id"`
		Seed          *int64 `json:"seed,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MovementID == "" || req.StartRegionID == "" {
		writeError(w, http.StatusBadRequest, "movement_id and start_region_id are required")
		return
	}

	view, err := h.gameSvc.CreateGame(r.Context(), playerID, req.MovementID, req.StartRegionID, req.Seed)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// GetGame handles GET /api/v1/games/{id}
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	view, err := h.gameSvc.GetGame(r.Context(), r.PathValue("id"), auth.PlayerIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Evolve handles POST /api/v1/games/{id}/evolve
func (h *GameHandler) Evolve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := decodeJSON(r, &req); err != nil || req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}
	view, err := h.gameSvc.Evolve(r.Context(), r.PathValue("id"), auth.PlayerIDFromContext(r.Context()), req.ItemID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// CollectInfluence handles POST /api/v1/games/{id}/collect
func (h *GameHandler) CollectInfluence(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Points int `json:"points"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	view, err := h.gameSvc.CollectInfluence(r.Context(), r.PathValue("id"), auth.PlayerIDFromContext(r.Context()), req.Points)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// AdvanceTurn handles POST /api/v1/games/{id}/advance
func (h *GameHandler) AdvanceTurn(w http.ResponseWriter, r *http.Request) {
	rep, view, err := h.gameSvc.AdvanceTurn(r.Context(), r.PathValue("id"), auth.PlayerIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"report": rep,
		"game":   view,
	})
}

// ChooseEventOption handles POST /api/v1/games/{id}/events/{eventId}/choice
func (h *GameHandler) ChooseEventOption(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OptionID string `json:"option_id"`
	}
	if err := decodeJSON(r, &req); err != nil || req.OptionID == "" {
		writeError(w, http.StatusBadRequest, "option_id is required")
		return
	}
	view, err := h.gameSvc.ChooseEventOption(r.Context(), r.PathValue("id"), auth.PlayerIDFromContext(r.Context()),
		r.PathValue("eventId"), req.OptionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SetStance handles PUT /api/v1/games/{id}/rivals/{rivalId}/stance
func (h *GameHandler) SetStance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stance culture.Stance `json:"stance"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	view, err := h.gameSvc.SetStance(r.Context(), r.PathValue("id"), auth.PlayerIDFromContext(r.Context()),
		r.PathValue("rivalId"), req.Stance)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Headlines handles GET /api/v1/games/{id}/headlines
func (h *GameHandler) Headlines(w http.ResponseWriter, r *http.Request) {
	lines, err := h.gameSvc.Headlines(r.Context(), r.PathValue("id"), auth.PlayerIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if lines == nil {
		lines = []string{}
	}
	writeJSON(w, http.StatusOK, lines)
}

// ListTurns handles GET /api/v1/games/{id}/turns
func (h *GameHandler) ListTurns(w http.ResponseWriter, r *http.Request) {
	turns, err := h.gameSvc.ListTurns(r.Context(), r.PathValue("id"), auth.PlayerIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if turns == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, turns)
}

// ListResults handles GET /api/v1/results
func (h *GameHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.gameSvc.ListResults(r.Context(), auth.PlayerIDFromContext(r.Context()), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if results == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, results)
}
