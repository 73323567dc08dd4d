package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

// stubJWTService implements jwt.Service with a canned ValidateAndParse result.
type stubJWTService struct {
	token *jwt.Token
	err   error
}

func (s *stubJWTService) GenerateToken(string, []string, time.Duration) (string, error) {
	return "", nil
}
func (s *stubJWTService) ValidateToken(string) (*jwt.Token, error) { return nil, nil }
func (s *stubJWTService) ValidateAndParse(string) (*jwt.Token, error) {
	return s.token, s.err
}
func (s *stubJWTService) ParseToken(string) (*jwt.Token, error)                    { return nil, nil }
func (s *stubJWTService) RefreshToken(string) (string, error)                      { return "", nil }
func (s *stubJWTService) RefreshTokenExtend(string, time.Duration) (string, error) { return "", nil }
func (s *stubJWTService) RevokeToken(string) error                                 { return nil }
func (s *stubJWTService) IsTokenRevoked(string) bool                               { return false }
func (s *stubJWTService) RevokeAllUserTokens(string) error                         { return nil }
func (s *stubJWTService) Close()                                                   {}

func newAuthRouter(svc jwt.Service, publicPaths []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(svc, publicPaths))
	handler := func(c *gin.Context) {
		actor, ok := pkg.Actor(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"actor": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	}
	r.GET("/api/v1/clients", handler)
	r.POST("/api/v1/auth/login", handler)
	return r
}

func TestAuth_PublicPathSkipsAuthentication(t *testing.T) {
	r := newAuthRouter(&stubJWTService{err: errors.New("should not be called")}, []string{"/api/v1/auth/login"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("public path status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	r := newAuthRouter(&stubJWTService{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuth_MalformedAuthorizationHeader(t *testing.T) {
	r := newAuthRouter(&stubJWTService{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	r := newAuthRouter(&stubJWTService{err: errors.New("expired")}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuth_NonNumericSubject(t *testing.T) {
	r := newAuthRouter(&stubJWTService{token: &jwt.Token{UserID: "not-a-number"}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuth_ValidTokenSetsActor(t *testing.T) {
	svc := &stubJWTService{token: &jwt.Token{UserID: "42", Roles: []string{domain.RoleAdmin}}}
	r := newAuthRouter(svc, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body = %s", w.Code, http.StatusOK, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"id":42`) || !strings.Contains(body, `"role":"admin"`) {
		t.Errorf("body = %s, want actor id 42 with admin role", body)
	}
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		r.GET("/admin", func(c *gin.Context) {
			c.Set(pkg.ActorIDKey, uint(1))
			c.Set(pkg.ActorRoleKey, role)
		}, RequireAdmin(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("admin passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		newRouter(domain.RoleAdmin).ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("consultant forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		newRouter(domain.RoleConsultant).ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})
}

func TestRequireAdmin_NoActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
