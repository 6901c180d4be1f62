package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const playerKey contextKey = "player"

// Player is the authenticated caller.
type Player struct {
	ID   string
	Name string
}

// Middleware returns an HTTP middleware that requires a Bearer access token
// and stores the caller in the request context.
func Middleware(jwtMgr *JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") {
				http.Error(w, `{"error":"invalid authorization format"}`, http.StatusUnauthorized)
				return
			}

			claims, err := jwtMgr.Validate(token, KindAccess)
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			ctx := WithPlayer(r.Context(), Player{ID: claims.PlayerID, Name: claims.Name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithPlayer stores the caller in ctx.
func WithPlayer(ctx context.Context, p Player) context.Context {
	return context.WithValue(ctx, playerKey, p)
}

// PlayerFromContext returns the authenticated caller, if any.
func PlayerFromContext(ctx context.Context) (Player, bool) {
	p, ok := ctx.Value(playerKey).(Player)
	return p, ok
}

// PlayerIDFromContext returns the caller's ID or "".
func PlayerIDFromContext(ctx context.Context) string {
	p, _ := PlayerFromContext(ctx)
	return p.ID
}
