package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseWildcardOrigin(t *testing.T) {
	valid := map[string]wildcardOrigin{
		"https://*.example.com":              {scheme: "https://", suffix: ".example.com"},
		"http://*.localhost.dev":             {scheme: "http://", suffix: ".localhost.dev"},
		"https://*.nutrisense-app.pages.dev": {scheme: "https://", suffix: ".nutrisense-app.pages.dev"},
	}
	for pattern, want := range valid {
		got := parseWildcardOrigin(pattern)
		if got == nil {
			t.Errorf("parseWildcardOrigin(%q) = nil", pattern)
			continue
		}
		if *got != want {
			t.Errorf("parseWildcardOrigin(%q) = %+v, want %+v", pattern, *got, want)
		}
	}

	invalid := []string{
		"*.example.com",
		"*",
		"https://example.*",
		"https://*.*.example.com",
		"https://*example.com",
		"https://*.com",
		"https://example.com",
	}
	for _, pattern := range invalid {
		if got := parseWildcardOrigin(pattern); got != nil {
			t.Errorf("parseWildcardOrigin(%q) = %+v, want nil", pattern, got)
		}
	}
}

func TestWildcardOriginMatches(t *testing.T) {
	w := parseWildcardOrigin("https://*.example.com")
	if w == nil {
		t.Fatal("parseWildcardOrigin returned nil")
	}

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://app.example.com", true},
		{"https://a1b2c3d4.example.com", true},
		{"http://app.example.com", false},
		{"https://app.other.com", false},
		{"https://a.b.example.com", false},
		{"https://example.com", false},
		{"https://evil-example.com", false},
		{"https://app.example.com.evil.com", false},
		{"https://app.example.com:8443", false},
	}

	for _, tt := range tests {
		if got := w.matches(tt.origin); got != tt.want {
			t.Errorf("matches(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestCORSAllowList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://nutrisense.app", "https://*.nutrisense-app.pages.dev"}))
	r.GET("/advice", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"exact origin", http.MethodGet, "https://nutrisense.app", http.StatusOK, "https://nutrisense.app"},
		{"preview deployment", http.MethodGet, "https://pr-12.nutrisense-app.pages.dev", http.StatusOK, "https://pr-12.nutrisense-app.pages.dev"},
		{"unknown origin get", http.MethodGet, "https://evil.example", http.StatusOK, ""},
		{"unknown origin preflight", http.MethodOptions, "https://evil.example", http.StatusForbidden, ""},
		{"allowed preflight", http.MethodOptions, "https://nutrisense.app", http.StatusNoContent, "https://nutrisense.app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/advice", nil)
			req.Header.Set("Origin", tt.origin)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}
