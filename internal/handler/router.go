package handler

import (
	"net/http"

	"github.com/freeeve/zeitgeist/internal/auth"
	"github.com/freeeve/zeitgeist/internal/middleware"
	"github.com/freeeve/zeitgeist/internal/service"
)

// RouterConfig carries what NewRouter wires together.
type RouterConfig struct {
	GameService    *service.GameService
	JWT            *auth.JWTManager
	Hub            *Hub
	AllowedOrigins string
	DevMode        bool
}

// NewRouter builds the full HTTP handler: public auth routes, the protected
// /api/v1 surface and the WebSocket endpoint, wrapped in the global middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.JWT, cfg.DevMode)
	gameHandler := NewGameHandler(cfg.GameService)
	scenarioHandler := NewScenarioHandler(cfg.GameService.Scenario())
	wsHandler := NewWSHandler(cfg.Hub, cfg.JWT, cfg.GameService)

	mux := http.NewServeMux()
	authMw := auth.Middleware(cfg.JWT)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth (public)
	mux.HandleFunc("POST /auth/refresh", authHandler.RefreshToken)
	mux.HandleFunc("GET /auth/dev", authHandler.DevLogin)

	// Protected API routes
	api := http.NewServeMux()
	api.HandleFunc("GET /scenario", scenarioHandler.GetScenario)
	api.HandleFunc("POST /games", gameHandler.CreateGame)
	api.HandleFunc("GET /games/{id}", gameHandler.GetGame)
	api.HandleFunc("POST /games/{id}/evolve", gameHandler.Evolve)
	api.HandleFunc("POST /games/{id}/collect", gameHandler.CollectInfluence)
	api.HandleFunc("POST /games/{id}/advance", gameHandler.AdvanceTurn)
	api.HandleFunc("POST /games/{id}/events/{eventId}/choice", gameHandler.ChooseEventOption)
	api.HandleFunc("PUT /games/{id}/rivals/{rivalId}/stance", gameHandler.SetStance)
	api.HandleFunc("GET /games/{id}/headlines", gameHandler.Headlines)
	api.HandleFunc("GET /games/{id}/turns", gameHandler.ListTurns)
	api.HandleFunc("GET /results", gameHandler.ListResults)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", authMw(api)))

	// WebSocket (auth via query param, not middleware)
	mux.HandleFunc("GET /api/v1/ws", wsHandler.ServeWS)

	origins := cfg.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	return middleware.Chain(mux, middleware.Recover, middleware.Logger, middleware.CORS(origins), middleware.JSON)
}
