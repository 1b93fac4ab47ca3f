package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
	"github.com/JonnyWalker81/nutrisense/backend/pkg/supabase"
)

type mockVerifier struct {
	tokens map[string]string // token -> user id
}

func (m *mockVerifier) VerifyToken(ctx context.Context, token string) (*supabase.User, error) {
	if id, ok := m.tokens[token]; ok {
		return &supabase.User{ID: id, Email: id + "@example.com"}, nil
	}
	return nil, errors.New("invalid token")
}

func newAuthRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(logger.Default()), mw)
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    c.GetString("user_id"),
			"ctx_user":   logger.UserIDFromContext(c.Request.Context()),
			"request_id": logger.RequestIDFromContext(c.Request.Context()),
		})
	})
	return r
}

func TestAuth(t *testing.T) {
	r := newAuthRouter(Auth(&mockVerifier{tokens: map[string]string{"good": "u1"}}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.want == http.StatusUnauthorized {
				if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
					t.Errorf("Content-Type = %q", ct)
				}
			}
		})
	}
}

func TestDevAuth(t *testing.T) {
	r := newAuthRouter(DevAuth("local"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"user_id":"local"`) {
		t.Errorf("default user: %d %s", w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-User-ID", "u2")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `"ctx_user":"u2"`) {
		t.Errorf("header user not propagated: %s", w.Body.String())
	}
}

func TestLoggerRequestID(t *testing.T) {
	r := newAuthRouter(DevAuth("local"))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "req-42" {
		t.Errorf("echoed request id = %q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if got := w.Header().Get(RequestIDHeader); got == "" {
		t.Error("expected a generated request id")
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://app.example.com", "https://*.nutrisense-app.pages.dev"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		origin string
		want   int
	}{
		{"https://app.example.com", http.StatusNoContent},
		{"https://preview1.nutrisense-app.pages.dev", http.StatusNoContent},
		{"https://evil.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", tt.origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("origin %s: status = %d, want %d", tt.origin, w.Code, tt.want)
		}
		if tt.want == http.StatusNoContent && w.Header().Get("Access-Control-Allow-Origin") != tt.origin {
			t.Errorf("origin %s not echoed", tt.origin)
		}
	}
}
