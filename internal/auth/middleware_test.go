package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func accessToken(t *testing.T, mgr *JWTManager, id, name string) string {
	t.Helper()
	pair, err := mgr.Issue(id, name)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return pair.AccessToken
}

func TestMiddlewareValidToken(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	token := accessToken(t, mgr, "player-42", "Ada")

	var captured Player
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = PlayerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Middleware(mgr)(inner)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if captured.ID != "player-42" || captured.Name != "Ada" {
		t.Errorf("expected player-42/Ada, got %+v", captured)
	}
}

func TestMiddlewareRejects(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	pair, _ := mgr.Issue("player-1", "Ada")
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})
	handler := Middleware(mgr)(inner)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "Token abc123"},
		{"bearer only", "Bearer"},
		{"empty value", "Bearer "},
		{"invalid token", "Bearer invalid.jwt.token"},
		{"refresh token", "Bearer " + pair.RefreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestMiddlewareCaseInsensitiveBearer(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	token := accessToken(t, mgr, "player-1", "Ada")

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := Middleware(mgr)(inner)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for lowercase bearer, got %d", rec.Code)
	}
}

func TestPlayerFromContext(t *testing.T) {
	if id := PlayerIDFromContext(context.Background()); id != "" {
		t.Errorf("expected empty player ID without auth, got %s", id)
	}

	ctx := WithPlayer(context.Background(), Player{ID: "p", Name: "Ada"})
	p, ok := PlayerFromContext(ctx)
	if !ok || p.ID != "p" {
		t.Errorf("expected player p, got %+v (ok=%v)", p, ok)
	}
}
