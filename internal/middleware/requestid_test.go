package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// requestIDRouter echoes the assigned request id from the gin context on
// /id and from the Go context (as seen by the logger) on /ctx.
func requestIDRouter(cfg RequestIDConfig) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDWithConfig(cfg))
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	r.GET("/ctx", func(c *gin.Context) {
		for _, a := range logger.FromContext(c.Request.Context()) {
			if a.Key == "request_id" {
				c.String(http.StatusOK, a.Value.String())
				return
			}
		}
		c.String(http.StatusOK, "")
	})
	return r
}

func getRequestID(t *testing.T, r *gin.Engine, path, upstream string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if upstream != "" {
		req.Header.Set(requestIDHeader, upstream)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	return w
}

func TestRequestID_GeneratesID(t *testing.T) {
	r := requestIDRouter(RequestIDConfig{})

	w := getRequestID(t, r, "/id", "")

	body := w.Body.String()
	if len(body) != requestIDBytes*2 {
		t.Errorf("request id length = %d (%q), want %d", len(body), body, requestIDBytes*2)
	}
	if header := w.Header().Get(requestIDHeader); header != body {
		t.Errorf("response header = %q, want %q", header, body)
	}
}

func TestRequestID_UpstreamIgnoredByDefault(t *testing.T) {
	r := requestIDRouter(RequestIDConfig{})

	w := getRequestID(t, r, "/id", "upstream-id-123")

	if w.Body.String() == "upstream-id-123" {
		t.Error("upstream id reused although TrustUpstream is off")
	}
}

func TestRequestID_ReusesTrustedUpstreamHeader(t *testing.T) {
	r := requestIDRouter(RequestIDConfig{TrustUpstream: true})

	w := getRequestID(t, r, "/id", "upstream-id-123")

	if got := w.Body.String(); got != "upstream-id-123" {
		t.Errorf("request id = %q, want upstream value", got)
	}
	if header := w.Header().Get(requestIDHeader); header != "upstream-id-123" {
		t.Errorf("response header = %q, want upstream value", header)
	}
}

func TestRequestID_AttachedToGoContext(t *testing.T) {
	r := requestIDRouter(RequestIDConfig{TrustUpstream: true})

	w := getRequestID(t, r, "/ctx", "ctx-test-456")

	if got := w.Body.String(); got != "ctx-test-456" {
		t.Errorf("request id in context = %q, want %q", got, "ctx-test-456")
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	r := requestIDRouter(RequestIDConfig{})

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := getRequestID(t, r, "/id", "").Body.String()
		if seen[id] {
			t.Fatalf("duplicate request id generated: %q", id)
		}
		seen[id] = true
	}
}

func TestRequestID_RejectsMalformedUpstreamIDs(t *testing.T) {
	tests := []struct {
		name     string
		upstream string
		reused   bool
	}{
		{"too long", strings.Repeat("a", 65), false},
		{"bad charset", "bad_id", false},
		{"empty segments ok", "abc-123-DEF", true},
		{"boundary 64 chars", strings.Repeat("a", 64), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := requestIDRouter(RequestIDConfig{TrustUpstream: true})
			body := getRequestID(t, r, "/id", tt.upstream).Body.String()
			if tt.reused && body != tt.upstream {
				t.Errorf("request id = %q, want upstream %q reused", body, tt.upstream)
			}
			if !tt.reused {
				if body == tt.upstream {
					t.Fatal("malformed upstream id was reused")
				}
				if len(body) != requestIDBytes*2 {
					t.Errorf("generated id length = %d, want %d", len(body), requestIDBytes*2)
				}
			}
		})
	}
}

func TestGetRequestID_WithoutMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/no-id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/no-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "" {
		t.Errorf("request id = %q, want empty without middleware", w.Body.String())
	}
}
