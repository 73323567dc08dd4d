package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"

	"github.com/staffdesk/staffdesk/internal/pkg"
)

// newTestLogger writes key=value text lines into buf, with debug level so
// every request log is captured.
func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func loggerRouter(log *slog.Logger, requestID gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(requestID, Logger(log))

	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/not-found", func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})
	r.GET("/error", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "error")
	})
	r.POST("/widgets/:id", func(c *gin.Context) {
		c.String(http.StatusCreated, "created")
	})
	return r
}

func TestLogger_LevelTracksStatus(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
	}{
		{"2xx logs info", "/ok", http.StatusOK, "level=INFO"},
		{"4xx logs warn", "/not-found", http.StatusNotFound, "level=WARN"},
		{"5xx logs error", "/error", http.StatusInternalServerError, "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			r := loggerRouter(newTestLogger(&logBuf), RequestID())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			logOutput := logBuf.String()
			if !strings.Contains(logOutput, tt.wantLevel) {
				t.Errorf("expected %s, got:\n%s", tt.wantLevel, logOutput)
			}
			if !strings.Contains(logOutput, "request") {
				t.Errorf("expected log message 'request', got:\n%s", logOutput)
			}
		})
	}
}

func TestLogger_ContainsExpectedFields(t *testing.T) {
	var logBuf bytes.Buffer
	r := loggerRouter(newTestLogger(&logBuf), RequestID())

	req := httptest.NewRequest(http.MethodPost, "/widgets/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	logOutput := logBuf.String()
	fields := []string{
		"method=POST",
		"path=/widgets/42",
		"route=/widgets/:id",
		"status=201",
		"latency=",
		"client_ip=",
	}
	for _, field := range fields {
		if !strings.Contains(logOutput, field) {
			t.Errorf("expected log to contain %q, got:\n%s", field, logOutput)
		}
	}
}

func TestLogger_IncludesActorWhenAuthenticated(t *testing.T) {
	var logBuf bytes.Buffer
	r := gin.New()
	r.Use(Logger(newTestLogger(&logBuf)))
	r.GET("/me", func(c *gin.Context) {
		c.Set(pkg.ActorIDKey, uint(7))
		c.Set(pkg.ActorRoleKey, "admin")
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	logOutput := logBuf.String()
	for _, field := range []string{"actor_id=7", "actor_role=admin", "bytes=2"} {
		if !strings.Contains(logOutput, field) {
			t.Errorf("expected log to contain %q, got:\n%s", field, logOutput)
		}
	}
}

func TestLogger_AnonymousRequestOmitsActor(t *testing.T) {
	var logBuf bytes.Buffer
	r := loggerRouter(newTestLogger(&logBuf), RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if strings.Contains(logBuf.String(), "actor_id=") {
		t.Errorf("expected no actor attrs for anonymous request, got:\n%s", logBuf.String())
	}
}

func TestLogger_CollectsHandlerErrors(t *testing.T) {
	var logBuf bytes.Buffer
	r := gin.New()
	r.Use(Logger(newTestLogger(&logBuf)))
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("downstream unavailable"))
		c.String(http.StatusInternalServerError, "error")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	logOutput := logBuf.String()
	if !strings.Contains(logOutput, "level=ERROR") {
		t.Errorf("expected level=ERROR, got:\n%s", logOutput)
	}
	if !strings.Contains(logOutput, "downstream unavailable") {
		t.Errorf("expected handler error in log, got:\n%s", logOutput)
	}
}

func TestLogger_IncludesRequestIDFromContext(t *testing.T) {
	var logBuf bytes.Buffer
	log, err := logger.New(
		logger.WithConsoleWriter(&logBuf),
		logger.WithConsoleFormat(logger.FormatText),
		logger.WithConsoleColor(false),
		logger.WithLevel(slog.LevelDebug),
		logger.WithMiddleware(logger.ContextMiddleware()),
	)
	if err != nil {
		t.Fatalf("logger.New error: %v", err)
	}
	defer log.Close()

	r := loggerRouter(log.Logger, RequestIDWithConfig(RequestIDConfig{TrustUpstream: true}))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "test-req-id-789")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if !strings.Contains(logBuf.String(), "test-req-id-789") {
		t.Errorf("expected log to contain request_id 'test-req-id-789', got:\n%s", logBuf.String())
	}
}
