package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/pkg"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newUserRouter mounts the module behind a middleware that injects the
// given actor, standing in for the auth middleware.
func newUserRouter(repo *fakeUserRepo, actor domain.Actor) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set(pkg.ActorIDKey, actor.ID)
		c.Set(pkg.ActorRoleKey, actor.Role)
		c.Next()
	})
	NewModule(NewUserHandler(NewUserService(repo))).RegisterRoutes(api)
	return r
}

func TestRoutes_AdminGuardBlocksConsultants(t *testing.T) {
	repo := newFakeUserRepo(seedUser(2, domain.RoleConsultant))
	r := newUserRouter(repo, consultantActor)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"list", http.MethodGet, "/api/v1/users"},
		{"update", http.MethodPut, "/api/v1/users/2"},
		{"delete", http.MethodDelete, "/api/v1/users/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", w.Code)
			}
			if !strings.Contains(w.Body.String(), `"success":false`) {
				t.Errorf("body = %s, want error envelope", w.Body.String())
			}
		})
	}
	if repo.listCalls != 0 {
		t.Error("repository queried although the route guard rejected the caller")
	}
}

func TestRoutes_AdminPassesGuard(t *testing.T) {
	repo := newFakeUserRepo(seedUser(2, domain.RoleConsultant))
	r := newUserRouter(repo, adminActor)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	if repo.listCalls != 1 {
		t.Errorf("listCalls = %d, want 1", repo.listCalls)
	}
}

func TestRoutes_SelfReadBypassesGuard(t *testing.T) {
	repo := newFakeUserRepo(seedUser(2, domain.RoleConsultant))
	r := newUserRouter(repo, consultantActor)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/3", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign read status = %d, want 403", w.Code)
	}
}
