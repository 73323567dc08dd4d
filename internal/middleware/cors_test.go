package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func corsRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	handler := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/test", handler)
	r.POST("/test", handler)
	return r
}

func doCORS(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/test", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS_DefaultConfig_SetsHeaders(t *testing.T) {
	w := doCORS(corsRouter(CORS()), http.MethodGet, "http://example.com")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("Allow-Methods header missing")
	}
	if w.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Error("Allow-Headers header missing")
	}
	if got := w.Header().Get("Access-Control-Max-Age"); got != "86400" {
		t.Errorf("Max-Age = %q, want 86400", got)
	}
	if got := w.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q, want Origin", got)
	}
}

func TestCORS_PreflightReturns204(t *testing.T) {
	w := doCORS(corsRouter(CORS()), http.MethodOptions, "http://example.com")

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestCORS_NoOriginHeader_Untouched(t *testing.T) {
	w := doCORS(corsRouter(CORS()), http.MethodGet, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want absent", got)
	}
}

func TestCORS_Allowlist(t *testing.T) {
	cfg := CORSConfig{
		AllowOrigins: []string{"http://example.com", "http://localhost:3000"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       "3600",
	}

	t.Run("listed origin echoed", func(t *testing.T) {
		w := doCORS(corsRouter(CORSWithConfig(cfg)), http.MethodGet, "http://example.com")
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
			t.Errorf("Allow-Origin = %q, want the request origin", got)
		}
		if got := w.Header().Get("Access-Control-Max-Age"); got != "3600" {
			t.Errorf("Max-Age = %q, want 3600", got)
		}
	})

	t.Run("unlisted origin gets no headers", func(t *testing.T) {
		w := doCORS(corsRouter(CORSWithConfig(cfg)), http.MethodGet, "http://evil.com")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want absent for denied origin", got)
		}
		if got := w.Header().Get("Vary"); got != "Origin" {
			t.Errorf("Vary = %q, want Origin even for denied origin", got)
		}
	})

	t.Run("empty allowlist denies everything", func(t *testing.T) {
		empty := cfg
		empty.AllowOrigins = []string{}
		w := doCORS(corsRouter(CORSWithConfig(empty)), http.MethodGet, "http://example.com")
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want absent with empty allowlist", got)
		}
	})
}

func TestCORS_CredentialsEchoOrigin(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowCredentials = true

	w := doCORS(corsRouter(CORSWithConfig(cfg)), http.MethodGet, "http://example.com")

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Errorf("Allow-Origin = %q, want echoed origin with credentials", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want true", got)
	}
}

func TestMatchOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"wildcard allows any", []string{"*"}, "http://any.com", true},
		{"exact match", []string{"http://a.com"}, "http://a.com", true},
		{"no match", []string{"http://a.com"}, "http://b.com", false},
		{"multiple with match", []string{"http://a.com", "http://b.com"}, "http://b.com", true},
		{"empty list", nil, "http://a.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchOrigin(tt.allowed, tt.origin); got != tt.want {
				t.Errorf("matchOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}
